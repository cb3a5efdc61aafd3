package notification

import "os/exec"

// osExecutor shells out to the real notify command.
type osExecutor struct{}

func (osExecutor) Execute(cmd string, args ...string) error {
	return exec.Command(cmd, args...).Run()
}
