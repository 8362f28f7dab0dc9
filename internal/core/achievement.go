package core

// Achievement is a one-time unlock earned by a player.
type Achievement string

const (
	AchievementFirstWin      Achievement = "first_win"
	AchievementHotStreak     Achievement = "hot_streak"
	AchievementCloseCall     Achievement = "close_call"
	AchievementSpeedDemon    Achievement = "speed_demon"
	AchievementPowerPlayer   Achievement = "power_player"
	AchievementPerfectionist Achievement = "perfectionist"
)

// Title returns the display name of the achievement.
func (a Achievement) Title() string {
	switch a {
	case AchievementFirstWin:
		return "First Win"
	case AchievementHotStreak:
		return "Hot Streak"
	case AchievementCloseCall:
		return "Close Call"
	case AchievementSpeedDemon:
		return "Speed Demon"
	case AchievementPowerPlayer:
		return "Power Player"
	case AchievementPerfectionist:
		return "Perfectionist"
	default:
		return string(a)
	}
}

// Description explains how the achievement is earned.
func (a Achievement) Description() string {
	switch a {
	case AchievementFirstWin:
		return "Win your first round"
	case AchievementHotStreak:
		return "Win 3 rounds in a row"
	case AchievementCloseCall:
		return "Win with an answer within 1% of the truth"
	case AchievementSpeedDemon:
		return "Answer within 5 seconds"
	case AchievementPowerPlayer:
		return "Use 5 power-ups in one game"
	case AchievementPerfectionist:
		return "Win every round of a game"
	default:
		return ""
	}
}
