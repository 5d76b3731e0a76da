// Package sample generates a synthetic session corpus for demos and
// end-to-end testing. Users are drawn from behavioral archetypes with
// distinct click-type mixes, so the generated population actually separates
// into clusters instead of uniform noise.
package sample

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Generated file names within the target directory.
const (
	SessionsFile = "sessions.csv"
	ActionsFile  = "actions.csv"
	UsersFile    = "users.csv"
)

// Config controls corpus size and reproducibility.
type Config struct {
	Users           int
	SessionsPerUser int
	Months          int
	Seed            int64
}

// DefaultConfig returns a corpus size that clusters cleanly and runs fast.
func DefaultConfig() Config {
	return Config{
		Users:           40,
		SessionsPerUser: 6,
		Months:          6,
		Seed:            7,
	}
}

// archetype is a behavioral template: how a class of users distributes its
// clicks, how chatty it is with input fields, and how long it lingers.
type archetype struct {
	name        string
	clickWeight map[string]float64 // click_type -> relative weight; "" is plain navigation
	inputRate   float64            // probability an action is a text input
	actionsMin  int
	actionsMax  int
	durationMin int // seconds
	durationMax int
}

var archetypes = []archetype{
	{
		name: "decisive",
		clickWeight: map[string]float64{
			"purchase": 4, "search": 2, "product_link": 1, "": 1,
		},
		inputRate:  0.10,
		actionsMin: 4, actionsMax: 10,
		durationMin: 60, durationMax: 300,
	},
	{
		name: "explorer",
		clickWeight: map[string]float64{
			"product_link": 5, "search": 2, "": 2, "review": 1,
		},
		inputRate:  0.05,
		actionsMin: 15, actionsMax: 40,
		durationMin: 600, durationMax: 2400,
	},
	{
		name: "researcher",
		clickWeight: map[string]float64{
			"review": 4, "product_link": 2, "search": 1, "": 1,
		},
		inputRate:  0.10,
		actionsMin: 10, actionsMax: 25,
		durationMin: 900, durationMax: 3600,
	},
	{
		name: "bargain-hunter",
		clickWeight: map[string]float64{
			"filter": 4, "search": 3, "product_link": 1, "": 1,
		},
		inputRate:  0.20,
		actionsMin: 8, actionsMax: 20,
		durationMin: 300, durationMax: 1200,
	},
	{
		name: "configurer",
		clickWeight: map[string]float64{
			"product_option": 3, "quantity": 2, "purchase": 1, "": 2,
		},
		inputRate:  0.25,
		actionsMin: 6, actionsMax: 15,
		durationMin: 180, durationMax: 900,
	},
}

// Generate writes sessions.csv, actions.csv, and users.csv into dir.
// Identical configs always produce identical files.
func Generate(dir string, cfg Config) error {
	if cfg.Users <= 0 || cfg.SessionsPerUser <= 0 || cfg.Months <= 0 {
		return fmt.Errorf("users, sessions per user, and months must all be positive")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	const idLayout = "2006-01-02T15:04:05"

	sessionRows := [][]string{{"session_id", "user_id"}}
	actionRows := [][]string{{"session_id", "action_id", "timestamp", "action_type", "click_type", "input_text", "rationale"}}
	userRows := [][]string{{"user_id", "archetype", "session_count"}}

	actionID := 0
	for u := 0; u < cfg.Users; u++ {
		userID := fmt.Sprintf("u%03d", u)
		arch := archetypes[u%len(archetypes)]
		userRows = append(userRows, []string{userID, arch.name, strconv.Itoa(cfg.SessionsPerUser)})

		for s := 0; s < cfg.SessionsPerUser; s++ {
			monthStart := base.AddDate(0, rng.Intn(cfg.Months), 0)
			start := monthStart.
				AddDate(0, 0, rng.Intn(28)).
				Add(time.Duration(rng.Intn(24*3600)) * time.Second)
			duration := arch.durationMin + rng.Intn(arch.durationMax-arch.durationMin+1)
			end := start.Add(time.Duration(duration) * time.Second)

			sessionID := fmt.Sprintf("%s_s%02d_%s_%s", userID, s, start.Format(idLayout), end.Format(idLayout))
			sessionRows = append(sessionRows, []string{sessionID, userID})

			actions := arch.actionsMin + rng.Intn(arch.actionsMax-arch.actionsMin+1)
			for a := 0; a < actions; a++ {
				ts := start.Add(time.Duration(float64(duration) * float64(a) / float64(actions) * float64(time.Second)))
				actionType, clickType := sampleAction(arch, rng)
				actionID++
				actionRows = append(actionRows, []string{
					sessionID,
					strconv.Itoa(actionID),
					ts.Format(time.RFC3339),
					actionType,
					clickType,
					"", // input_text ignored by the pipeline
					"", // rationale ignored by the pipeline
				})
			}
		}
	}

	if err := writeCSV(filepath.Join(dir, SessionsFile), sessionRows); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, ActionsFile), actionRows); err != nil {
		return err
	}
	return writeCSV(filepath.Join(dir, UsersFile), userRows)
}

// sampleAction draws one action for the archetype: a text input, a session
// terminate, or a weighted click.
func sampleAction(arch archetype, rng *rand.Rand) (actionType, clickType string) {
	r := rng.Float64()
	switch {
	case r < arch.inputRate:
		return "input", ""
	case r < arch.inputRate+0.02:
		return "terminate", ""
	}

	total := 0.0
	for _, w := range arch.clickWeight {
		total += w
	}
	target := rng.Float64() * total

	// Deterministic iteration over the weight map
	for _, ct := range []string{"purchase", "search", "product_link", "review", "filter", "product_option", "quantity", ""} {
		w, ok := arch.clickWeight[ct]
		if !ok {
			continue
		}
		target -= w
		if target <= 0 {
			return "click", ct
		}
	}
	return "click", ""
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
