package card

// Player is a roster identity cards are minted from.
type Player struct {
	Name       string `json:"name" yaml:"name"`
	Team       string `json:"team" yaml:"team"`
	Position   string `json:"position" yaml:"position"`
	ExternalID string `json:"externalId,omitempty" yaml:"external_id,omitempty"`
}

// Positions in lineup order.
const (
	PG = "PG"
	SG = "SG"
	SF = "SF"
	PF = "PF"
	C  = "C"
)

// DefaultRoster ids are NBA.com player ids, used for headshots.
var DefaultRoster = []Player{
	{Name: "LeBron James", Team: "L.A. Lakers", Position: SF, ExternalID: "2544"},
	{Name: "Stephen Curry", Team: "Golden State", Position: PG, ExternalID: "201939"},
	{Name: "Kevin Durant", Team: "Phoenix", Position: PF, ExternalID: "201142"},
	{Name: "Giannis Antetokounmpo", Team: "Milwaukee", Position: PF, ExternalID: "203507"},
	{Name: "Nikola Jokic", Team: "Denver", Position: C, ExternalID: "203999"},
	{Name: "Luka Doncic", Team: "Dallas", Position: PG, ExternalID: "1629029"},
	{Name: "Jayson Tatum", Team: "Boston", Position: SF, ExternalID: "1628369"},
	{Name: "Joel Embiid", Team: "Philadelphia", Position: C, ExternalID: "203954"},
	{Name: "Shai Gilgeous-Alexander", Team: "Oklahoma City", Position: SG, ExternalID: "1628983"},
	{Name: "Anthony Edwards", Team: "Minnesota", Position: SG, ExternalID: "1630162"},
	{Name: "Devin Booker", Team: "Phoenix", Position: SG, ExternalID: "1626164"},
	{Name: "Jimmy Butler", Team: "Miami", Position: SF, ExternalID: "202710"},
	{Name: "Tyrese Haliburton", Team: "Indiana", Position: PG, ExternalID: "1630169"},
	{Name: "Victor Wembanyama", Team: "San Antonio", Position: C, ExternalID: "1641705"},
	{Name: "Ja Morant", Team: "Memphis", Position: PG, ExternalID: "1629630"},
	{Name: "Damian Lillard", Team: "Milwaukee", Position: PG, ExternalID: "203081"},
	{Name: "Kawhi Leonard", Team: "L.A. Clippers", Position: SF, ExternalID: "202695"},
	{Name: "Paul George", Team: "Philadelphia", Position: SF, ExternalID: "202331"},
	{Name: "Kyrie Irving", Team: "Dallas", Position: SG, ExternalID: "202681"},
	{Name: "Anthony Davis", Team: "L.A. Lakers", Position: C, ExternalID: "203076"},
	{Name: "Bam Adebayo", Team: "Miami", Position: C, ExternalID: "1628389"},
	{Name: "Donovan Mitchell", Team: "Cleveland", Position: SG, ExternalID: "1628378"},
	{Name: "Jaylen Brown", Team: "Boston", Position: SG, ExternalID: "1627759"},
	{Name: "Jalen Brunson", Team: "New York", Position: PG, ExternalID: "1628973"},
	{Name: "Trae Young", Team: "Atlanta", Position: PG, ExternalID: "1629027"},
	{Name: "Zion Williamson", Team: "New Orleans", Position: PF, ExternalID: "1629627"},
	{Name: "De'Aaron Fox", Team: "Sacramento", Position: PG, ExternalID: "1628368"},
	{Name: "Domantas Sabonis", Team: "Sacramento", Position: C, ExternalID: "1627734"},
	{Name: "LaMelo Ball", Team: "Charlotte", Position: PG, ExternalID: "1630163"},
	{Name: "Cade Cunningham", Team: "Detroit", Position: PG, ExternalID: "1630595"},
}
