package progress

// Achievement pairs an id with the predicate that unlocks it. Predicates
// are independent of each other; evaluation order does not affect the
// final unlocked set.
type Achievement struct {
	ID          string
	Name        string
	Icon        string
	Description string
	Condition   func(stats Stats, level, totalCoins int, purchased []string) bool
}

// AchievementBonusXP is the flat experience granted per unlock.
const AchievementBonusXP = 50

// Achievements is the fixed, ordered catalog of unlockable achievements.
var Achievements = []Achievement{
	{
		ID: "first_pomodoro", Name: "First Tomato", Icon: "🍅",
		Description: "Complete 1 focus session",
		Condition: func(s Stats, _, _ int, _ []string) bool {
			return s.TotalSessions >= 1
		},
	},
	{
		ID: "first_todo", Name: "First Task", Icon: "📝",
		Description: "Complete 1 task",
		Condition: func(s Stats, _, _ int, _ []string) bool {
			return s.TotalTasksCompleted >= 1
		},
	},
	{
		ID: "fire_streak", Name: "Fire Streak", Icon: "🔥",
		Description: "5 focus sessions in one day",
		Condition: func(s Stats, _, _ int, _ []string) bool {
			return s.DailySessions >= 5
		},
	},
	{
		ID: "diligent", Name: "Diligent", Icon: "💯",
		Description: "Complete 10 tasks",
		Condition: func(s Stats, _, _ int, _ []string) bool {
			return s.TotalTasksCompleted >= 10
		},
	},
	{
		ID: "productivity_monster", Name: "Productivity Monster", Icon: "🚀",
		Description: "Complete 50 tasks",
		Condition: func(s Stats, _, _ int, _ []string) bool {
			return s.TotalTasksCompleted >= 50
		},
	},
	{
		ID: "marathon", Name: "Marathon", Icon: "⏱️",
		Description: "10 hours of focus",
		Condition: func(s Stats, _, _ int, _ []string) bool {
			return s.TotalFocusMinutes >= 600
		},
	},
	{
		ID: "level_10", Name: "Level 10", Icon: "🏆",
		Description: "Reach level 10",
		Condition: func(_ Stats, level, _ int, _ []string) bool {
			return level >= 10
		},
	},
	{
		ID: "level_25", Name: "Level 25", Icon: "👑",
		Description: "Reach level 25",
		Condition: func(_ Stats, level, _ int, _ []string) bool {
			return level >= 25
		},
	},
	{
		ID: "level_50", Name: "Level 50", Icon: "🌟",
		Description: "Reach level 50",
		Condition: func(_ Stats, level, _ int, _ []string) bool {
			return level >= 50
		},
	},
	{
		ID: "collector", Name: "Collector", Icon: "💰",
		Description: "Earn 100 coins in total",
		Condition: func(_ Stats, _, totalCoins int, _ []string) bool {
			return totalCoins >= 100
		},
	},
	{
		ID: "first_purchase", Name: "First Purchase", Icon: "🛒",
		Description: "Buy your first item",
		Condition: func(_ Stats, _, _ int, purchased []string) bool {
			return len(purchased) >= 1
		},
	},
	{
		ID: "daily_routine", Name: "Daily Routine", Icon: "📅",
		Description: "Reach a 7 day streak",
		Condition: func(s Stats, _, _ int, _ []string) bool {
			return s.LongestStreak >= 7
		},
	},
	{
		ID: "focus_master", Name: "Focus Master", Icon: "🎯",
		Description: "100 focus sessions in total",
		Condition: func(s Stats, _, _ int, _ []string) bool {
			return s.TotalSessions >= 100
		},
	},
	{
		ID: "hardcore", Name: "Hardcore", Icon: "💎",
		Description: "200 focus sessions in total",
		Condition: func(s Stats, _, _ int, _ []string) bool {
			return s.TotalSessions >= 200
		},
	},
}

// AchievementByID looks up a catalog entry.
func AchievementByID(id string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
