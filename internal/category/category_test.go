// AngelaMos | 2026
// category_test.go

package category

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categories() []any {
	out := make([]any, 0, len(table))
	for _, info := range table {
		out = append(out, info.Category)
	}
	return out
}

func TestLookupEveryCategoryOnce(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("lookup returns exactly one matching entry", prop.ForAll(
		func(c Category) bool {
			info, err := Lookup(c)
			if err != nil || info.Category != c {
				return false
			}
			matches := 0
			for _, row := range All() {
				if row.Category == c {
					matches++
				}
			}
			return matches == 1
		},
		gen.OneConstOf(categories()...),
	))

	properties.Property("consultancy iff premium tier", prop.ForAll(
		func(c Category) bool {
			info, _ := Lookup(c)
			return CanAccessConsultancy(c) == (info.Tier == Premium)
		},
		gen.OneConstOf(categories()...),
	))

	properties.Property("parse round trips any casing", prop.ForAll(
		func(c Category, lower bool) bool {
			s := string(c)
			if lower {
				s = strings.ToLower(s)
			}
			got, err := Parse(s)
			return err == nil && got == c
		},
		gen.OneConstOf(categories()...),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup(Category("ASTRONAUT"))
	require.ErrorIs(t, err, ErrNotFound)
	assert.False(t, CanAccessConsultancy(Category("ASTRONAUT")))

	_, err = SubscriptionPrice(Category(""))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFees(t *testing.T) {
	tests := []struct {
		category     Category
		registration int64
		subscription int64
		consultancy  bool
	}{
		{MineralDealer, 5000, 15000, true},
		{Lessee, 5000, 15000, true},
		{GovernmentOfficial, 5000, 15000, true},
		{Firm, 10000, 20000, true},
		{Company, 15000, 25000, true},
		{Student, 1000, 6000, false},
		{Researcher, 1000, 6000, false},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			reg, err := RegistrationFee(tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.registration, reg)

			sub, err := SubscriptionPrice(tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.subscription, sub)

			assert.Equal(t, tt.consultancy, CanAccessConsultancy(tt.category))
		})
	}
}

func TestParseAliases(t *testing.T) {
	c, err := Parse("mining_dealer")
	require.NoError(t, err)
	assert.Equal(t, MineralDealer, c)

	c, err = Parse("LEASEE")
	require.NoError(t, err)
	assert.Equal(t, Lessee, c)

	c, err = Parse("government official")
	require.NoError(t, err)
	assert.Equal(t, GovernmentOfficial, c)

	_, err = Parse("pilot")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAllIsACopy(t *testing.T) {
	rows := All()
	rows[0].RegistrationFee = 1

	fee, err := RegistrationFee(rows[0].Category)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), fee)
}
