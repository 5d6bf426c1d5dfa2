package memory

import (
	"fmt"
	"strings"

	"github.com/boxpool/boxpool/internal/domain/team"
)

const (
	TeamIDChiefs     = "nfl-kc"
	TeamIDFortyNiner = "nfl-sf"
	TeamIDEagles     = "nfl-phi"
)

// SeedTeams is the NFL catalog. IDs are stable across releases; stored grids
// reference them.
func SeedTeams() []team.Team {
	teams := []team.Team{
		{ID: "nfl-ari", Name: "Arizona Cardinals", Abbreviation: "ARI", PrimaryColor: "#97233F", SecondaryColor: "#000000"},
		{ID: "nfl-atl", Name: "Atlanta Falcons", Abbreviation: "ATL", PrimaryColor: "#A71930", SecondaryColor: "#000000"},
		{ID: "nfl-bal", Name: "Baltimore Ravens", Abbreviation: "BAL", PrimaryColor: "#241773", SecondaryColor: "#9E7C0C"},
		{ID: "nfl-buf", Name: "Buffalo Bills", Abbreviation: "BUF", PrimaryColor: "#00338D", SecondaryColor: "#C60C30"},
		{ID: "nfl-car", Name: "Carolina Panthers", Abbreviation: "CAR", PrimaryColor: "#0085CA", SecondaryColor: "#101820"},
		{ID: "nfl-chi", Name: "Chicago Bears", Abbreviation: "CHI", PrimaryColor: "#0B162A", SecondaryColor: "#C83803"},
		{ID: "nfl-cin", Name: "Cincinnati Bengals", Abbreviation: "CIN", PrimaryColor: "#FB4F14", SecondaryColor: "#000000"},
		{ID: "nfl-cle", Name: "Cleveland Browns", Abbreviation: "CLE", PrimaryColor: "#311D00", SecondaryColor: "#FF3C00"},
		{ID: "nfl-dal", Name: "Dallas Cowboys", Abbreviation: "DAL", PrimaryColor: "#003594", SecondaryColor: "#869397"},
		{ID: "nfl-den", Name: "Denver Broncos", Abbreviation: "DEN", PrimaryColor: "#FB4F14", SecondaryColor: "#002244"},
		{ID: "nfl-det", Name: "Detroit Lions", Abbreviation: "DET", PrimaryColor: "#0076B6", SecondaryColor: "#B0B7BC"},
		{ID: "nfl-gb", Name: "Green Bay Packers", Abbreviation: "GB", PrimaryColor: "#203731", SecondaryColor: "#FFB612"},
		{ID: "nfl-hou", Name: "Houston Texans", Abbreviation: "HOU", PrimaryColor: "#03202F", SecondaryColor: "#A71930"},
		{ID: "nfl-ind", Name: "Indianapolis Colts", Abbreviation: "IND", PrimaryColor: "#002C5F", SecondaryColor: "#A2AAAD"},
		{ID: "nfl-jax", Name: "Jacksonville Jaguars", Abbreviation: "JAX", PrimaryColor: "#101820", SecondaryColor: "#D7A22A"},
		{ID: TeamIDChiefs, Name: "Kansas City Chiefs", Abbreviation: "KC", PrimaryColor: "#E31837", SecondaryColor: "#FFB81C"},
		{ID: "nfl-lac", Name: "Los Angeles Chargers", Abbreviation: "LAC", PrimaryColor: "#0080C6", SecondaryColor: "#FFC20E"},
		{ID: "nfl-lar", Name: "Los Angeles Rams", Abbreviation: "LAR", PrimaryColor: "#003594", SecondaryColor: "#FFA300"},
		{ID: "nfl-lv", Name: "Las Vegas Raiders", Abbreviation: "LV", PrimaryColor: "#000000", SecondaryColor: "#A5ACAF"},
		{ID: "nfl-mia", Name: "Miami Dolphins", Abbreviation: "MIA", PrimaryColor: "#008E97", SecondaryColor: "#FC4C02"},
		{ID: "nfl-min", Name: "Minnesota Vikings", Abbreviation: "MIN", PrimaryColor: "#4F2683", SecondaryColor: "#FFC62F"},
		{ID: "nfl-ne", Name: "New England Patriots", Abbreviation: "NE", PrimaryColor: "#002244", SecondaryColor: "#C60C30"},
		{ID: "nfl-no", Name: "New Orleans Saints", Abbreviation: "NO", PrimaryColor: "#D3BC8D", SecondaryColor: "#101820"},
		{ID: "nfl-nyg", Name: "New York Giants", Abbreviation: "NYG", PrimaryColor: "#0B2265", SecondaryColor: "#A71930"},
		{ID: "nfl-nyj", Name: "New York Jets", Abbreviation: "NYJ", PrimaryColor: "#125740", SecondaryColor: "#000000"},
		{ID: TeamIDEagles, Name: "Philadelphia Eagles", Abbreviation: "PHI", PrimaryColor: "#004C54", SecondaryColor: "#A5ACAF"},
		{ID: "nfl-pit", Name: "Pittsburgh Steelers", Abbreviation: "PIT", PrimaryColor: "#FFB612", SecondaryColor: "#101820"},
		{ID: "nfl-sea", Name: "Seattle Seahawks", Abbreviation: "SEA", PrimaryColor: "#002244", SecondaryColor: "#69BE28"},
		{ID: TeamIDFortyNiner, Name: "San Francisco 49ers", Abbreviation: "SF", PrimaryColor: "#AA0000", SecondaryColor: "#B3995D"},
		{ID: "nfl-tb", Name: "Tampa Bay Buccaneers", Abbreviation: "TB", PrimaryColor: "#D50A0A", SecondaryColor: "#34302B"},
		{ID: "nfl-ten", Name: "Tennessee Titans", Abbreviation: "TEN", PrimaryColor: "#0C2340", SecondaryColor: "#4B92DB"},
		{ID: "nfl-was", Name: "Washington Commanders", Abbreviation: "WAS", PrimaryColor: "#5A1414", SecondaryColor: "#FFB612"},
	}

	for i := range teams {
		teams[i].LogoURL = fmt.Sprintf("https://static.boxpool.app/logos/%s.png", strings.ToLower(teams[i].Abbreviation))
	}

	return teams
}
