package progress

import (
	"fmt"
	"time"

	"focusquest/internal/clock"
	"focusquest/internal/sound"
	"focusquest/internal/task"
)

// Experience awards per event source.
const (
	XPTaskHigh   = 30
	XPTaskMedium = 20
	XPTaskLow    = 10
	XPSession    = 25
)

// Notification lifetimes before auto-dismiss.
const (
	LevelUpNoticeTTL     = 5 * time.Second
	AchievementNoticeTTL = 4 * time.Second
)

// XPForPriority maps a task priority to its completion award.
func XPForPriority(p task.Priority) int {
	switch p {
	case task.PriorityHigh:
		return XPTaskHigh
	case task.PriorityMedium:
		return XPTaskMedium
	default:
		return XPTaskLow
	}
}

// Source labels where granted experience came from.
type Source string

const (
	SourceTask    Source = "task"
	SourceSession Source = "session"
	SourceBonus   Source = "bonus"
)

// LevelUpNotice is the time-boxed level-up notification.
type LevelUpNotice struct {
	Level       int
	Rank        Rank
	CoinsEarned int
	expires     time.Time
}

// AchievementNotice is the time-boxed achievement notification.
type AchievementNotice struct {
	Achievement Achievement
	expires     time.Time
}

// Engine owns the progression profile. It subscribes to the task store's
// domain events and is driven from the same single goroutine.
type Engine struct {
	clk      clock.Clock
	triggers sound.Triggers

	profile Profile

	levelNotice *LevelUpNotice
	achNotice   *AchievementNotice

	onChange func()
}

// NewEngine creates an engine with a fresh profile.
func NewEngine(clk clock.Clock, triggers sound.Triggers) *Engine {
	if triggers == nil {
		triggers = sound.Nop{}
	}
	return &Engine{
		clk:      clk,
		triggers: triggers,
		profile:  NewProfile(),
	}
}

// SetChangeListener registers a callback invoked after every observable
// mutation, used by the reconciliation engine for write-through.
func (e *Engine) SetChangeListener(fn func()) { e.onChange = fn }

func (e *Engine) changed() {
	if e.onChange != nil {
		e.onChange()
	}
}

// =============================================================================
// Event subscription (task.Events)
// =============================================================================

// TaskCompleted grants the priority-scaled completion award.
func (e *Engine) TaskCompleted(p task.Priority) {
	e.triggers.TaskCompleted()
	e.GrantExperience(XPForPriority(p), SourceTask)
}

// FocusSessionCompleted grants the session award and records focus time.
func (e *Engine) FocusSessionCompleted(minutes int) {
	e.triggers.SessionCompleted()
	e.GrantExperience(XPSession, SourceSession)
	e.AddFocusMinutes(minutes)
}

var _ task.Events = (*Engine)(nil)

// =============================================================================
// Experience & leveling
// =============================================================================

// GrantExperience adds experience, processes any resulting level-ups (a
// single grant can cross several thresholds), updates the per-source
// counters, and re-evaluates achievements.
func (e *Engine) GrantExperience(amount int, source Source) {
	e.checkDailyReset()

	e.profile.XP += amount
	e.applyLevelUps()

	switch source {
	case SourceSession:
		e.profile.Stats.TotalSessions++
		e.profile.Stats.DailySessions++
	case SourceTask:
		e.profile.Stats.TotalTasksCompleted++
		e.profile.Stats.DailyTasks++
	}

	e.EvaluateAchievements()
	e.changed()
}

// AddFocusMinutes adds completed focus time to the lifetime counter.
func (e *Engine) AddFocusMinutes(minutes int) {
	e.profile.Stats.TotalFocusMinutes += minutes
	e.EvaluateAchievements()
	e.changed()
}

// applyLevelUps consumes experience while it meets the current threshold.
// Each step pays out coins scaled by the new level and refreshes the
// level-up notice.
func (e *Engine) applyLevelUps() {
	for e.profile.XP >= Threshold(e.profile.Level) {
		e.profile.XP -= Threshold(e.profile.Level)
		e.profile.Level++

		earned := e.profile.Level * 10
		e.profile.Coins += earned
		e.profile.TotalCoinsEarned += earned

		e.levelNotice = &LevelUpNotice{
			Level:       e.profile.Level,
			Rank:        RankForLevel(e.profile.Level),
			CoinsEarned: earned,
			expires:     e.clk.Now().Add(LevelUpNoticeTTL),
		}
		e.triggers.LevelUp(e.profile.Level)
	}
}

// checkDailyReset applies the streak rule on the first activity of a new
// day: the streak extends when the last active day was exactly yesterday,
// otherwise it restarts at 1. Daily counters reset. Evaluated at most once
// per day boundary; redundant calls are no-ops.
func (e *Engine) checkDailyReset() {
	today := e.clk.Today()
	if e.profile.Stats.LastActiveDate == today {
		return
	}

	if e.profile.Stats.LastActiveDate != "" &&
		e.profile.Stats.LastActiveDate == clock.Yesterday(today) {
		e.profile.Stats.CurrentStreak++
	} else {
		e.profile.Stats.CurrentStreak = 1
	}
	if e.profile.Stats.CurrentStreak > e.profile.Stats.LongestStreak {
		e.profile.Stats.LongestStreak = e.profile.Stats.CurrentStreak
	}

	e.profile.Stats.DailySessions = 0
	e.profile.Stats.DailyTasks = 0
	e.profile.Stats.LastActiveDate = today
}

// CheckDailyReset exposes the day-boundary check for callers that observe
// "today" before any grant happens.
func (e *Engine) CheckDailyReset() {
	e.checkDailyReset()
	e.changed()
}

// =============================================================================
// Achievements
// =============================================================================

// EvaluateAchievements unlocks every achievement whose predicate holds,
// iterating to a fixed point: the flat bonus XP of an unlock can level the
// profile up and satisfy further predicates. The unlocked set only grows.
func (e *Engine) EvaluateAchievements() {
	for {
		unlockedAny := false
		for _, a := range Achievements {
			if e.HasUnlocked(a.ID) {
				continue
			}
			if a.Condition(e.profile.Stats, e.profile.Level, e.profile.TotalCoinsEarned, e.profile.PurchasedItems) {
				e.unlock(a)
				unlockedAny = true
			}
		}
		if !unlockedAny {
			return
		}
	}
}

func (e *Engine) unlock(a Achievement) {
	e.profile.Unlocked = append(e.profile.Unlocked, a.ID)

	e.profile.XP += AchievementBonusXP
	e.applyLevelUps()

	e.achNotice = &AchievementNotice{
		Achievement: a,
		expires:     e.clk.Now().Add(AchievementNoticeTTL),
	}
	e.triggers.AchievementUnlocked(a.ID)
}

// HasUnlocked reports whether the achievement id is in the unlocked set.
func (e *Engine) HasUnlocked(id string) bool {
	for _, u := range e.profile.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}

// =============================================================================
// Economy
// =============================================================================

// Purchase buys a shop item. It fails on unknown ids, on re-buying a
// non-consumable, and on insufficient balance; failures leave the balance
// and owned set untouched.
func (e *Engine) Purchase(itemID string) Result {
	item, ok := ItemByID(itemID)
	if !ok {
		return failure(fmt.Sprintf("unknown item: %s", itemID))
	}
	if e.HasItem(itemID) && item.Type != ItemConsumable {
		return failure(fmt.Sprintf("%s is already owned", item.Name))
	}
	if e.profile.Coins < item.Price {
		return failure(fmt.Sprintf("not enough coins for %s (need %d, have %d)", item.Name, item.Price, e.profile.Coins))
	}

	e.profile.Coins -= item.Price
	if item.Type != ItemConsumable {
		e.profile.PurchasedItems = append(e.profile.PurchasedItems, itemID)
	}

	e.triggers.PurchaseMade(itemID)
	e.EvaluateAchievements()
	e.changed()
	return success(fmt.Sprintf("%s purchased", item.Name))
}

// HasItem reports whether the item id is in the owned set.
func (e *Engine) HasItem(itemID string) bool {
	for _, id := range e.profile.PurchasedItems {
		if id == itemID {
			return true
		}
	}
	return false
}

// ActivateOrDeactivate toggles an owned item: themes are exclusive and
// replace the active theme, cosmetics toggle independently. Consumables
// cannot be activated.
func (e *Engine) ActivateOrDeactivate(itemID string) Result {
	item, ok := ItemByID(itemID)
	if !ok {
		return failure(fmt.Sprintf("unknown item: %s", itemID))
	}
	if !e.HasItem(itemID) {
		return failure(fmt.Sprintf("%s is not owned", item.Name))
	}

	switch item.Type {
	case ItemTheme:
		if e.profile.ActiveTheme == itemID {
			e.profile.ActiveTheme = DefaultTheme
			e.changed()
			return success(fmt.Sprintf("%s deactivated", item.Name))
		}
		e.profile.ActiveTheme = itemID
		e.changed()
		return success(fmt.Sprintf("%s activated", item.Name))

	case ItemCosmetic:
		for i, id := range e.profile.ActiveCosmetics {
			if id == itemID {
				e.profile.ActiveCosmetics = append(e.profile.ActiveCosmetics[:i], e.profile.ActiveCosmetics[i+1:]...)
				e.changed()
				return success(fmt.Sprintf("%s deactivated", item.Name))
			}
		}
		e.profile.ActiveCosmetics = append(e.profile.ActiveCosmetics, itemID)
		e.changed()
		return success(fmt.Sprintf("%s activated", item.Name))
	}

	return failure(fmt.Sprintf("%s cannot be activated", item.Name))
}

// DeactivateTheme reverts to the default theme.
func (e *Engine) DeactivateTheme() {
	e.profile.ActiveTheme = DefaultTheme
	e.changed()
}

// IsItemActive reports whether a theme is selected or a cosmetic enabled.
func (e *Engine) IsItemActive(itemID string) bool {
	item, ok := ItemByID(itemID)
	if !ok {
		return false
	}
	switch item.Type {
	case ItemTheme:
		return e.profile.ActiveTheme == itemID
	case ItemCosmetic:
		for _, id := range e.profile.ActiveCosmetics {
			if id == itemID {
				return true
			}
		}
	}
	return false
}

// =============================================================================
// Accessors & notifications
// =============================================================================

// Profile returns a value copy of the progression state.
func (e *Engine) Profile() Profile {
	p := e.profile
	p.PurchasedItems = append([]string(nil), e.profile.PurchasedItems...)
	p.ActiveCosmetics = append([]string(nil), e.profile.ActiveCosmetics...)
	p.Unlocked = append([]string(nil), e.profile.Unlocked...)
	return p
}

// XPToNextLevel returns the experience still missing for the next level.
func (e *Engine) XPToNextLevel() int {
	return Threshold(e.profile.Level) - e.profile.XP
}

// CurrentLevelUpNotice returns the level-up notification while it has not
// expired or been dismissed.
func (e *Engine) CurrentLevelUpNotice() (LevelUpNotice, bool) {
	if e.levelNotice == nil || !e.clk.Now().Before(e.levelNotice.expires) {
		return LevelUpNotice{}, false
	}
	return *e.levelNotice, true
}

// CurrentAchievementNotice returns the achievement notification while it
// has not expired or been dismissed.
func (e *Engine) CurrentAchievementNotice() (AchievementNotice, bool) {
	if e.achNotice == nil || !e.clk.Now().Before(e.achNotice.expires) {
		return AchievementNotice{}, false
	}
	return *e.achNotice, true
}

// DismissLevelUpNotice clears the level-up notification.
func (e *Engine) DismissLevelUpNotice() { e.levelNotice = nil }

// DismissAchievementNotice clears the achievement notification.
func (e *Engine) DismissAchievementNotice() { e.achNotice = nil }

// =============================================================================
// Export / import
// =============================================================================

// Export serializes the full profile.
func (e *Engine) Export() ProfileData {
	p := e.Profile()
	stats := p.Stats
	return ProfileData{
		XP:               intPtr(p.XP),
		Level:            intPtr(p.Level),
		Coins:            intPtr(p.Coins),
		TotalCoinsEarned: intPtr(p.TotalCoinsEarned),
		PurchasedItems:   p.PurchasedItems,
		ActiveTheme:      strPtr(p.ActiveTheme),
		ActiveCosmetics:  p.ActiveCosmetics,
		Unlocked:         p.Unlocked,
		Stats: &StatsData{
			TotalSessions:       intPtr(stats.TotalSessions),
			TotalTasksCompleted: intPtr(stats.TotalTasksCompleted),
			TotalFocusMinutes:   intPtr(stats.TotalFocusMinutes),
			CurrentStreak:       intPtr(stats.CurrentStreak),
			LongestStreak:       intPtr(stats.LongestStreak),
			LastActiveDate:      strPtr(stats.LastActiveDate),
			DailySessions:       intPtr(stats.DailySessions),
			DailyTasks:          intPtr(stats.DailyTasks),
		},
	}
}

// Import overwrites the profile fields present in the data and keeps the
// current value for absent ones. The unlocked-achievement set is unioned,
// never shrunk.
func (e *Engine) Import(data ProfileData) {
	if data.XP != nil {
		e.profile.XP = *data.XP
	}
	if data.Level != nil && *data.Level >= 1 {
		e.profile.Level = *data.Level
	}
	if data.Coins != nil {
		e.profile.Coins = *data.Coins
	}
	if data.TotalCoinsEarned != nil {
		e.profile.TotalCoinsEarned = *data.TotalCoinsEarned
	}
	if data.PurchasedItems != nil {
		e.profile.PurchasedItems = append([]string(nil), data.PurchasedItems...)
	}
	if data.ActiveTheme != nil && *data.ActiveTheme != "" {
		e.profile.ActiveTheme = *data.ActiveTheme
	}
	if data.ActiveCosmetics != nil {
		e.profile.ActiveCosmetics = append([]string(nil), data.ActiveCosmetics...)
	}
	for _, id := range data.Unlocked {
		if !e.HasUnlocked(id) {
			e.profile.Unlocked = append(e.profile.Unlocked, id)
		}
	}
	if data.Stats != nil {
		e.importStats(*data.Stats)
	}

	// A profile edited elsewhere may carry overflow experience.
	e.applyLevelUps()
	e.changed()
}

func (e *Engine) importStats(s StatsData) {
	st := &e.profile.Stats
	if s.TotalSessions != nil {
		st.TotalSessions = *s.TotalSessions
	}
	if s.TotalTasksCompleted != nil {
		st.TotalTasksCompleted = *s.TotalTasksCompleted
	}
	if s.TotalFocusMinutes != nil {
		st.TotalFocusMinutes = *s.TotalFocusMinutes
	}
	if s.CurrentStreak != nil {
		st.CurrentStreak = *s.CurrentStreak
	}
	if s.LongestStreak != nil {
		st.LongestStreak = *s.LongestStreak
	}
	if s.LastActiveDate != nil {
		st.LastActiveDate = *s.LastActiveDate
	}
	if s.DailySessions != nil {
		st.DailySessions = *s.DailySessions
	}
	if s.DailyTasks != nil {
		st.DailyTasks = *s.DailyTasks
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
