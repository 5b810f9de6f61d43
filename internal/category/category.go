// AngelaMos | 2026
// category.go

package category

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("category not found")

type Category string

const (
	MineralDealer      Category = "MINERAL_DEALER"
	Lessee             Category = "LESSEE"
	GovernmentOfficial Category = "GOVERNMENT_OFFICIAL"
	Firm               Category = "FIRM"
	Company            Category = "COMPANY"
	Student            Category = "STUDENT"
	Researcher         Category = "RESEARCHER"
)

type AccessTier string

const (
	Premium  AccessTier = "PREMIUM"
	Academic AccessTier = "ACADEMIC"
)

// Info is the entitlement record for one category. Fees are whole rupees.
type Info struct {
	Category        Category   `json:"category"`
	Label           string     `json:"label"`
	Tier            AccessTier `json:"tier"`
	RegistrationFee int64      `json:"registration_fee"`
	SubscriptionFee int64      `json:"subscription_fee"`
}

var table = []Info{
	{MineralDealer, "Mineral Dealer", Premium, 5000, 15000},
	{Lessee, "Lessee", Premium, 5000, 15000},
	{GovernmentOfficial, "Government Official", Premium, 5000, 15000},
	{Firm, "Firm", Premium, 10000, 20000},
	{Company, "Company", Premium, 15000, 25000},
	{Student, "Student", Academic, 1000, 6000},
	{Researcher, "Researcher", Academic, 1000, 6000},
}

var aliases = map[string]Category{
	"MINING_DEALER": MineralDealer,
	"LEASEE":        Lessee,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) Valid() bool {
	_, err := Lookup(c)
	return err == nil
}

func Lookup(c Category) (Info, error) {
	for _, info := range table {
		if info.Category == c {
			return info, nil
		}
	}
	return Info{}, fmt.Errorf("lookup %q: %w", c, ErrNotFound)
}

// Parse accepts any casing and the legacy spellings still stored by older
// accounts.
func Parse(s string) (Category, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, " ", "_")
	if c, ok := aliases[key]; ok {
		return c, nil
	}
	c := Category(key)
	if !c.Valid() {
		return "", fmt.Errorf("parse %q: %w", s, ErrNotFound)
	}
	return c, nil
}

func All() []Info {
	out := make([]Info, len(table))
	copy(out, table)
	return out
}

func CanAccessConsultancy(c Category) bool {
	info, err := Lookup(c)
	return err == nil && info.Tier == Premium
}

func SubscriptionPrice(c Category) (int64, error) {
	info, err := Lookup(c)
	if err != nil {
		return 0, err
	}
	return info.SubscriptionFee, nil
}

func RegistrationFee(c Category) (int64, error) {
	info, err := Lookup(c)
	if err != nil {
		return 0, err
	}
	return info.RegistrationFee, nil
}
