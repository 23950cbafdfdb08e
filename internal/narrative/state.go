// Package narrative holds the global narrative state of the intranet: the
// logged-in identity plus every flag that records how far the horror script
// has progressed. The Store is the single writer; the reveal engines, the
// triggers and the UI only call its operations and subscribe to changes.
package narrative

// Identity constants.
const (
	Protagonist           = "김솔음"
	GuestName             = "방문자"
	CorruptedName         = "■■■"
	ProtagonistTeam       = "D조"
	ProtagonistRank       = "주임"
	ProtagonistPoints     = 15400
	EmployeeRank          = "사원"
	EmployeePoints        = 520
	HiddenMallLoginID     = "yongj1111"
	HiddenMallBackPresses = 5
)

// EmployeeTeams are handed out at random to anyone who is not the protagonist.
var EmployeeTeams = []string{"X조", "Y조", "Z조"}

// State is the persisted narrative snapshot.
type State struct {
	UserName   string `json:"userName" yaml:"userName"`
	Team       string `json:"team" yaml:"team"`
	Rank       string `json:"rank" yaml:"rank"`
	Points     int    `json:"points" yaml:"points"`
	IsLoggedIn bool   `json:"isLoggedIn" yaml:"isLoggedIn"`
	SessionID  string `json:"sessionId" yaml:"sessionId"`

	IsNavigationDisabled bool `json:"isNavigationDisabled" yaml:"isNavigationDisabled"`
	JumpscareViewed      bool `json:"jumpscareViewed" yaml:"jumpscareViewed"`

	SecurityTimerActive      bool `json:"securityTimerActive" yaml:"securityTimerActive"`
	SecurityMessageTriggered bool `json:"securityMessageTriggered" yaml:"securityMessageTriggered"`
	IsSecurityMessageRead    bool `json:"isSecurityMessageRead" yaml:"isSecurityMessageRead"`
	IsSecurityToastShown     bool `json:"isSecurityToastShown" yaml:"isSecurityToastShown"`
	SecurityEasterEggDone    bool `json:"securityEasterEggDone" yaml:"securityEasterEggDone"`

	SpamMessageDeleted bool `json:"spamMessageDeleted" yaml:"spamMessageDeleted"`

	HasWelfareMallAccess    bool   `json:"hasWelfareMallAccess" yaml:"hasWelfareMallAccess"`
	WelfareMallLoginID      string `json:"welfareMallLoginId" yaml:"welfareMallLoginId"`
	BackButtonCount         int    `json:"backButtonCount" yaml:"backButtonCount"`
	WelfareMallHiddenAccess bool   `json:"welfareMallHiddenAccess" yaml:"welfareMallHiddenAccess"`
	IsPointGlitching        bool   `json:"isPointGlitching" yaml:"isPointGlitching"`
}

// DefaultState is the state before anyone has logged in.
func DefaultState() State {
	return State{Points: ProtagonistPoints}
}

// IsNameCorrupted reports whether the corruption sentinel replaced the name.
func (s State) IsNameCorrupted() bool {
	return s.UserName == CorruptedName
}

// IsProtagonist reports whether the protagonist is logged in.
func (s State) IsProtagonist() bool {
	return s.IsLoggedIn && s.UserName == Protagonist
}
