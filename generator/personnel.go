package generator

import (
	"fmt"
	"math/rand/v2"

	"synth911/models"
)

// addressPoolSize is the number of distinct street addresses drawn per run.
const addressPoolSize = 2500

// NameSource produces localized person names and street addresses.
// *gofakeit.Faker satisfies it.
type NameSource interface {
	FirstName() string
	LastName() string
	Street() string
}

// BuildPersonnelPool creates size "Last, First" names for every shift.
func BuildPersonnelPool(size int, names NameSource) models.PersonnelPool {
	pool := make(models.PersonnelPool, len(models.AllShifts))
	for _, shift := range models.AllShifts {
		roster := make([]string, size)
		for i := range roster {
			roster[i] = fmt.Sprintf("%s, %s", names.LastName(), names.FirstName())
		}
		pool[shift] = roster
	}
	return pool
}

// pickName draws a name from the shift's roster.
func pickName(pool models.PersonnelPool, shift models.Shift, rng *rand.Rand) string {
	roster := pool[shift]
	if len(roster) == 0 {
		return ""
	}
	return roster[rng.IntN(len(roster))]
}

// buildAddressPool collects up to size distinct street addresses. The name
// source may repeat itself, so the number of attempts is bounded.
func buildAddressPool(size int, names NameSource) []string {
	seen := make(map[string]bool, size)
	pool := make([]string, 0, size)
	for attempts := 0; len(pool) < size && attempts < size*4; attempts++ {
		addr := names.Street()
		if seen[addr] {
			continue
		}
		seen[addr] = true
		pool = append(pool, addr)
	}
	return pool
}
