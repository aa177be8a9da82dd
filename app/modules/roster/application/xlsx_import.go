package rosterservice

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// ParseRosterXLSX reads a signup sheet into roster entries. The first sheet
// must carry a header row with "name", "player 1" and optionally "player 2"
// and "id" columns (case-insensitive). Rows without a name are skipped;
// entries without an explicit id get one derived from the name.
func ParseRosterXLSX(data []byte) ([]tournamenttypes.Competitor, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheets[0])
	}

	cols, err := findRosterColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var competitors []tournamenttypes.Competitor
	for _, row := range rows[1:] {
		name := cellAt(row, cols.name)
		if name == "" {
			continue
		}

		var players []string
		if p := cellAt(row, cols.player1); p != "" {
			players = append(players, p)
		}
		if cols.player2 >= 0 {
			if p := cellAt(row, cols.player2); p != "" {
				players = append(players, p)
			}
		}
		if len(players) == 0 {
			// A solo signup without a player column entry plays as themselves.
			players = []string{name}
		}

		id := cellAt(row, cols.id)
		if id == "" {
			id = slugify(name)
		}

		competitors = append(competitors, tournamenttypes.Competitor{
			ID:      tournamenttypes.CompetitorID(id),
			Name:    name,
			Players: players,
		})
	}
	return competitors, nil
}

type rosterColumns struct {
	id      int
	name    int
	player1 int
	player2 int
}

func findRosterColumns(header []string) (rosterColumns, error) {
	cols := rosterColumns{id: -1, name: -1, player1: -1, player2: -1}
	for i, cell := range header {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "id":
			cols.id = i
		case "name", "team", "team name":
			cols.name = i
		case "player 1", "player1":
			cols.player1 = i
		case "player 2", "player2":
			cols.player2 = i
		}
	}
	if cols.name < 0 {
		return cols, fmt.Errorf("no name column found in header row")
	}
	return cols, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
