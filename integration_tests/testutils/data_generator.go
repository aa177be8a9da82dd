package testutils

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// TestDataGenerator produces deterministic-ish roster data for integration
// tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a generator, seeded for reproducibility when a
// seed is given.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// GenerateCompetitors returns n unique competitors, mixing duos and solo
// players the way a real signup sheet does.
func (g *TestDataGenerator) GenerateCompetitors(n int) []tournamenttypes.Competitor {
	competitors := make([]tournamenttypes.Competitor, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s %s", g.faker.AdjectiveDescriptive(), g.faker.Animal())
		players := []string{g.faker.Gamertag()}
		if i%2 == 0 {
			players = append(players, g.faker.Gamertag())
		}
		competitors = append(competitors, tournamenttypes.Competitor{
			ID:      tournamenttypes.CompetitorID(fmt.Sprintf("%s-%d", slug(name), i)),
			Name:    name,
			Players: players,
		})
	}
	return competitors
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}
