package resolve

// Team is one row of the static franchise reference table.
type Team struct {
	ID           string
	FullName     string
	Abbreviation string
	Nickname     string
	City         string
	Conference   string
	Division     string
}

// nbaTeams is the static reference set for team resolution. Franchise
// identifiers are stable upstream, so this table only changes on
// relocation or expansion.
var nbaTeams = []Team{
	{ID: "1610612737", FullName: "Atlanta Hawks", Abbreviation: "ATL", Nickname: "Hawks", City: "Atlanta", Conference: "East", Division: "Southeast"},
	{ID: "1610612738", FullName: "Boston Celtics", Abbreviation: "BOS", Nickname: "Celtics", City: "Boston", Conference: "East", Division: "Atlantic"},
	{ID: "1610612739", FullName: "Cleveland Cavaliers", Abbreviation: "CLE", Nickname: "Cavaliers", City: "Cleveland", Conference: "East", Division: "Central"},
	{ID: "1610612740", FullName: "New Orleans Pelicans", Abbreviation: "NOP", Nickname: "Pelicans", City: "New Orleans", Conference: "West", Division: "Southwest"},
	{ID: "1610612741", FullName: "Chicago Bulls", Abbreviation: "CHI", Nickname: "Bulls", City: "Chicago", Conference: "East", Division: "Central"},
	{ID: "1610612742", FullName: "Dallas Mavericks", Abbreviation: "DAL", Nickname: "Mavericks", City: "Dallas", Conference: "West", Division: "Southwest"},
	{ID: "1610612743", FullName: "Denver Nuggets", Abbreviation: "DEN", Nickname: "Nuggets", City: "Denver", Conference: "West", Division: "Northwest"},
	{ID: "1610612744", FullName: "Golden State Warriors", Abbreviation: "GSW", Nickname: "Warriors", City: "Golden State", Conference: "West", Division: "Pacific"},
	{ID: "1610612745", FullName: "Houston Rockets", Abbreviation: "HOU", Nickname: "Rockets", City: "Houston", Conference: "West", Division: "Southwest"},
	{ID: "1610612746", FullName: "Los Angeles Clippers", Abbreviation: "LAC", Nickname: "Clippers", City: "Los Angeles", Conference: "West", Division: "Pacific"},
	{ID: "1610612747", FullName: "Los Angeles Lakers", Abbreviation: "LAL", Nickname: "Lakers", City: "Los Angeles", Conference: "West", Division: "Pacific"},
	{ID: "1610612748", FullName: "Miami Heat", Abbreviation: "MIA", Nickname: "Heat", City: "Miami", Conference: "East", Division: "Southeast"},
	{ID: "1610612749", FullName: "Milwaukee Bucks", Abbreviation: "MIL", Nickname: "Bucks", City: "Milwaukee", Conference: "East", Division: "Central"},
	{ID: "1610612750", FullName: "Minnesota Timberwolves", Abbreviation: "MIN", Nickname: "Timberwolves", City: "Minnesota", Conference: "West", Division: "Northwest"},
	{ID: "1610612751", FullName: "Brooklyn Nets", Abbreviation: "BKN", Nickname: "Nets", City: "Brooklyn", Conference: "East", Division: "Atlantic"},
	{ID: "1610612752", FullName: "New York Knicks", Abbreviation: "NYK", Nickname: "Knicks", City: "New York", Conference: "East", Division: "Atlantic"},
	{ID: "1610612753", FullName: "Orlando Magic", Abbreviation: "ORL", Nickname: "Magic", City: "Orlando", Conference: "East", Division: "Southeast"},
	{ID: "1610612754", FullName: "Indiana Pacers", Abbreviation: "IND", Nickname: "Pacers", City: "Indiana", Conference: "East", Division: "Central"},
	{ID: "1610612755", FullName: "Philadelphia 76ers", Abbreviation: "PHI", Nickname: "76ers", City: "Philadelphia", Conference: "East", Division: "Atlantic"},
	{ID: "1610612756", FullName: "Phoenix Suns", Abbreviation: "PHX", Nickname: "Suns", City: "Phoenix", Conference: "West", Division: "Pacific"},
	{ID: "1610612757", FullName: "Portland Trail Blazers", Abbreviation: "POR", Nickname: "Trail Blazers", City: "Portland", Conference: "West", Division: "Northwest"},
	{ID: "1610612758", FullName: "Sacramento Kings", Abbreviation: "SAC", Nickname: "Kings", City: "Sacramento", Conference: "West", Division: "Pacific"},
	{ID: "1610612759", FullName: "San Antonio Spurs", Abbreviation: "SAS", Nickname: "Spurs", City: "San Antonio", Conference: "West", Division: "Southwest"},
	{ID: "1610612760", FullName: "Oklahoma City Thunder", Abbreviation: "OKC", Nickname: "Thunder", City: "Oklahoma City", Conference: "West", Division: "Northwest"},
	{ID: "1610612761", FullName: "Toronto Raptors", Abbreviation: "TOR", Nickname: "Raptors", City: "Toronto", Conference: "East", Division: "Atlantic"},
	{ID: "1610612762", FullName: "Utah Jazz", Abbreviation: "UTA", Nickname: "Jazz", City: "Utah", Conference: "West", Division: "Northwest"},
	{ID: "1610612763", FullName: "Memphis Grizzlies", Abbreviation: "MEM", Nickname: "Grizzlies", City: "Memphis", Conference: "West", Division: "Southwest"},
	{ID: "1610612764", FullName: "Washington Wizards", Abbreviation: "WAS", Nickname: "Wizards", City: "Washington", Conference: "East", Division: "Southeast"},
	{ID: "1610612765", FullName: "Detroit Pistons", Abbreviation: "DET", Nickname: "Pistons", City: "Detroit", Conference: "East", Division: "Central"},
	{ID: "1610612766", FullName: "Charlotte Hornets", Abbreviation: "CHA", Nickname: "Hornets", City: "Charlotte", Conference: "East", Division: "Southeast"},
}
