package applicant

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Enum values start at 1 so the zero value reads as "unset".

type BankAccountType uint8

const (
	AccountSavings BankAccountType = iota + 1
	AccountCurrent
	AccountOther
)

var bankAccountTypeNames = []string{"Savings", "Current", "Other"}

type BankName uint8

const (
	BankAccess BankName = iota + 1
	BankDiamond
	BankEco
	BankFCMB
	BankFidelity
	BankFirst
	BankGT
	BankHeritage
	BankKeystone
	BankSkye
	BankStanbicIBTC
	BankStandardChartered
	BankSterling
	BankUBA
	BankUnion
	BankUnity
	BankWema
	BankZenith
)

var bankNames = []string{
	"Access Bank", "Diamond Bank", "EcoBank", "FCMB", "Fidelity Bank", "First Bank", "GT Bank",
	"Heritage Bank", "Keystone Bank", "Skye Bank", "Stanbic IBTC", "Standard Chartered",
	"Sterling Bank", "UBA", "Union Bank", "Unity Bank", "Wema Bank", "Zenith Bank",
}

type EmploymentStatus uint8

const (
	EmploymentContract EmploymentStatus = iota + 1
	EmploymentPermanent
	EmploymentRetired
	EmploymentSelfEmployed
	EmploymentStudent
	EmploymentUnemployed
)

var employmentStatusNames = []string{
	"Contract", "Permanent", "Retired", "Self-Employed", "Student", "Unemployed",
}

type EducationLevel uint8

const (
	EducationNone EducationLevel = iota + 1
	EducationPrimary
	EducationSecondary
	EducationGraduate
	EducationPostGraduate
)

var educationLevelNames = []string{"None", "Primary", "Secondary", "Graduate", "Post-Graduate"}

type State uint8

const (
	StateAbia State = iota + 1
	StateAbuja
	StateAdamawa
	StateAkwaIbom
	StateAnambra
	StateBauchi
	StateBayelsa
	StateBenue
	StateBorno
	StateCrossRiver
	StateDelta
	StateEbonyi
	StateEdo
	StateEkiti
	StateEnugu
	StateGombe
	StateImo
	StateJigawa
	StateKaduna
	StateKano
	StateKatsina
	StateKebbi
	StateKogi
	StateKwara
	StateLagos
	StateNassarawa
	StateNiger
	StateOgun
	StateOndo
	StateOsun
	StateOutsideNigeria
	StateOyo
	StatePlateau
	StateRivers
	StateSokoto
	StateTaraba
	StateZamfara
)

var stateNames = []string{
	"Abia", "Abuja Federal Capital Territory", "Adamawa", "Akwa Ibom", "Anambra", "Bauchi", "Bayelsa", "Benue",
	"Borno", "Cross River", "Delta", "Ebonyi", "Edo", "Ekiti", "Enugu", "Gombe", "Imo", "Jigawa", "Kaduna", "Kano",
	"Katsina", "Kebbi", "Kogi", "Kwara", "Lagos", "Nassarawa", "Niger", "Ogun", "Ondo", "Osun", "Outside Nigeria",
	"Oyo", "Plateau", "Rivers", "Sokoto", "Taraba", "Zamfara",
}

func nameOf(names []string, v uint8) string {
	if v == 0 || int(v) > len(names) {
		return ""
	}
	return names[v-1]
}

// lookup matches s against names ignoring case and surrounding space.
// A Caser carries state, so each call gets its own.
func lookup(names []string, kind, s string) (uint8, error) {
	folder := cases.Fold()
	key := folder.String(strings.TrimSpace(s))
	for i, name := range names {
		if folder.String(name) == key {
			return uint8(i + 1), nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}

func (t BankAccountType) String() string { return nameOf(bankAccountTypeNames, uint8(t)) }
func (t BankAccountType) Valid() bool    { return t.String() != "" }

func (t BankAccountType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid bank account type %d", t)
	}
	return []byte(t.String()), nil
}

func (t *BankAccountType) UnmarshalText(b []byte) error {
	v, err := ParseBankAccountType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func ParseBankAccountType(s string) (BankAccountType, error) {
	v, err := lookup(bankAccountTypeNames, "bank account type", s)
	return BankAccountType(v), err
}

// BankAccountTypes lists the variants in display order.
func BankAccountTypes() []BankAccountType {
	out := make([]BankAccountType, len(bankAccountTypeNames))
	for i := range out {
		out[i] = BankAccountType(i + 1)
	}
	return out
}

func (b BankName) String() string { return nameOf(bankNames, uint8(b)) }
func (b BankName) Valid() bool    { return b.String() != "" }

func (b BankName) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid bank name %d", b)
	}
	return []byte(b.String()), nil
}

func (b *BankName) UnmarshalText(text []byte) error {
	v, err := ParseBankName(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func ParseBankName(s string) (BankName, error) {
	v, err := lookup(bankNames, "bank name", s)
	return BankName(v), err
}

func BankNames() []BankName {
	out := make([]BankName, len(bankNames))
	for i := range out {
		out[i] = BankName(i + 1)
	}
	return out
}

func (e EmploymentStatus) String() string { return nameOf(employmentStatusNames, uint8(e)) }
func (e EmploymentStatus) Valid() bool    { return e.String() != "" }

func (e EmploymentStatus) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("invalid employment status %d", e)
	}
	return []byte(e.String()), nil
}

func (e *EmploymentStatus) UnmarshalText(b []byte) error {
	v, err := ParseEmploymentStatus(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

func ParseEmploymentStatus(s string) (EmploymentStatus, error) {
	v, err := lookup(employmentStatusNames, "employment status", s)
	return EmploymentStatus(v), err
}

func EmploymentStatuses() []EmploymentStatus {
	out := make([]EmploymentStatus, len(employmentStatusNames))
	for i := range out {
		out[i] = EmploymentStatus(i + 1)
	}
	return out
}

func (l EducationLevel) String() string { return nameOf(educationLevelNames, uint8(l)) }
func (l EducationLevel) Valid() bool    { return l.String() != "" }

func (l EducationLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid education level %d", l)
	}
	return []byte(l.String()), nil
}

func (l *EducationLevel) UnmarshalText(b []byte) error {
	v, err := ParseEducationLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

func ParseEducationLevel(s string) (EducationLevel, error) {
	v, err := lookup(educationLevelNames, "education level", s)
	return EducationLevel(v), err
}

func EducationLevels() []EducationLevel {
	out := make([]EducationLevel, len(educationLevelNames))
	for i := range out {
		out[i] = EducationLevel(i + 1)
	}
	return out
}

func (s State) String() string { return nameOf(stateNames, uint8(s)) }
func (s State) Valid() bool    { return s.String() != "" }

func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid state %d", s)
	}
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	v, err := ParseState(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func ParseState(s string) (State, error) {
	v, err := lookup(stateNames, "state", s)
	return State(v), err
}

func States() []State {
	out := make([]State, len(stateNames))
	for i := range out {
		out[i] = State(i + 1)
	}
	return out
}
