// Package progress implements the progression engine: experience and
// leveling, achievements, the coin economy, and lifetime statistics.
package progress

// DefaultTheme is the theme id active when no purchased theme is selected.
const DefaultTheme = "default"

// Stats aggregates lifetime and per-day counters. JSON tags match the
// snapshot file format.
type Stats struct {
	TotalSessions       int    `json:"totalPomodoros"`
	TotalTasksCompleted int    `json:"totalTodosCompleted"`
	TotalFocusMinutes   int    `json:"totalFocusMinutes"`
	CurrentStreak       int    `json:"currentStreak"`
	LongestStreak       int    `json:"longestStreak"`
	LastActiveDate      string `json:"lastActiveDate"` // day key, empty until first activity
	DailySessions       int    `json:"dailyPomodoros"`
	DailyTasks          int    `json:"dailyTodos"`
}

// Profile is the full progression state.
type Profile struct {
	XP               int
	Level            int
	Coins            int
	TotalCoinsEarned int
	PurchasedItems   []string
	ActiveTheme      string
	ActiveCosmetics  []string
	Unlocked         []string // achievement ids, append-only
	Stats            Stats
}

// NewProfile returns the starting profile: level 1, nothing owned.
func NewProfile() Profile {
	return Profile{
		Level:           1,
		PurchasedItems:  []string{},
		ActiveTheme:     DefaultTheme,
		ActiveCosmetics: []string{},
		Unlocked:        []string{},
	}
}

// Threshold returns the experience required to advance from the given
// level to the next.
func Threshold(level int) int { return level * 100 }

// Rank is a named tier on the level ladder.
type Rank struct {
	MinLevel int
	Name     string
	Icon     string
}

// Ranks is the ladder of named tiers, ascending by minimum level.
var Ranks = []Rank{
	{MinLevel: 1, Name: "Beginner", Icon: "🌱"},
	{MinLevel: 6, Name: "Apprentice", Icon: "⭐"},
	{MinLevel: 11, Name: "Journeyman", Icon: "🔥"},
	{MinLevel: 16, Name: "Expert", Icon: "💪"},
	{MinLevel: 21, Name: "Master", Icon: "⚡"},
	{MinLevel: 31, Name: "Grandmaster", Icon: "🎯"},
	{MinLevel: 41, Name: "Champion", Icon: "👑"},
	{MinLevel: 51, Name: "Virtuoso", Icon: "💎"},
	{MinLevel: 61, Name: "Elite", Icon: "🏆"},
	{MinLevel: 81, Name: "Legend", Icon: "🌟"},
}

// RankForLevel returns the highest rank whose minimum level is reached.
func RankForLevel(level int) Rank {
	for i := len(Ranks) - 1; i >= 0; i-- {
		if level >= Ranks[i].MinLevel {
			return Ranks[i]
		}
	}
	return Ranks[0]
}

// ProfileData is the serialized form of a profile. All fields are optional
// on import: nil pointers and nil slices keep the current in-memory value.
type ProfileData struct {
	XP               *int       `json:"xp,omitempty"`
	Level            *int       `json:"level,omitempty"`
	Coins            *int       `json:"coins,omitempty"`
	TotalCoinsEarned *int       `json:"totalCoinsEarned,omitempty"`
	PurchasedItems   []string   `json:"purchasedItems,omitempty"`
	ActiveTheme      *string    `json:"activeTheme,omitempty"`
	ActiveCosmetics  []string   `json:"activeCosmetics,omitempty"`
	Unlocked         []string   `json:"unlockedAchievements,omitempty"`
	Stats            *StatsData `json:"stats,omitempty"`
}

// StatsData is the serialized form of Stats with optional fields.
type StatsData struct {
	TotalSessions       *int    `json:"totalPomodoros,omitempty"`
	TotalTasksCompleted *int    `json:"totalTodosCompleted,omitempty"`
	TotalFocusMinutes   *int    `json:"totalFocusMinutes,omitempty"`
	CurrentStreak       *int    `json:"currentStreak,omitempty"`
	LongestStreak       *int    `json:"longestStreak,omitempty"`
	LastActiveDate      *string `json:"lastActiveDate,omitempty"`
	DailySessions       *int    `json:"dailyPomodoros,omitempty"`
	DailyTasks          *int    `json:"dailyTodos,omitempty"`
}
