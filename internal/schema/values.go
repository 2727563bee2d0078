package schema

// Canonical value sets for enum filters. Casing matters upstream, so
// validation canonicalizes case-insensitive input onto these forms.
var (
	seasonTypes = []string{"Regular Season", "Playoffs"}

	// Per-mode sets differ per upstream endpoint family.
	perModeCareer  = []string{"PerGame", "Totals", "Per36"}
	perModeLeaders = []string{"PerGame", "Totals", "Per48"}
	perModeLeague  = []string{"PerGame", "Totals", "Per36", "Per48"}
	perModeSimple  = []string{"PerGame", "Totals"}

	measureTypesPlayer = []string{"Base", "Advanced", "Misc", "Scoring", "Usage"}
	measureTypesLeague = []string{"Base", "Advanced", "Misc", "Scoring", "Usage", "Defense", "Four Factors", "Opponent"}

	leaderStats = []string{
		"PTS", "AST", "REB", "STL", "BLK", "FGM", "FGA", "FG_PCT",
		"FG3M", "FG3A", "FG3_PCT", "FTM", "FTA", "FT_PCT",
		"OREB", "DREB", "TOV", "MIN", "EFF",
	}

	positions       = []string{"F", "C", "G"}
	conferences     = []string{"East", "West"}
	divisions       = []string{"Atlantic", "Central", "Southeast", "Northwest", "Pacific", "Southwest"}
	starterBench    = []string{"Starters", "Bench"}
	experiences     = []string{"Rookie", "Sophomore", "Veteran"}
	draftPicks      = []string{"1st Round", "2nd Round", "1st Pick", "Lottery", "Undrafted"}
	outcomes        = []string{"W", "L"}
	locations       = []string{"Home", "Road"}
	shotClockRanges = []string{"24-22", "22-18 Very Early", "18-15 Early", "15-7 Average", "7-4 Late", "4-0 Very Late", "ShotClock Off"}

	statTypes      = []string{"tracking", "hustle", "defense", "playtype"}
	ptMeasureTypes = []string{
		"SpeedDistance", "Drives", "Passing", "Possessions", "CatchShoot",
		"PullUpShoot", "Rebounding", "Defense", "Efficiency",
		"ElbowTouch", "PostTouch", "PaintTouch",
	}
	defenseCategories = []string{"Overall", "3 Pointers", "2 Pointers", "Less Than 6Ft", "Greater Than 15Ft"}
	playTypes         = []string{
		"Isolation", "Transition", "PRBallHandler", "PRRollman", "Postup",
		"Spotup", "Handoff", "Cut", "OffScreen", "OffRebound",
	}
)
