package main

import "fmt"

// validateSolution replays a solve response frame by frame and checks that
// every transition is a legal single-cell slide matching the reported move
// list, and that the final frame actually parks the target at the exit.
// The server's own solver produced the path, so a failure here means the
// wire format and the search disagree about the same board.
func validateSolution(detail *BoardDetail, resp *SolveResponse) error {
	if !resp.Found {
		if resp.MoveCount != 0 || len(resp.Moves) != 0 || len(resp.Frames) != 0 {
			return fmt.Errorf("unsolved response carries %d moves and %d frames", resp.MoveCount, len(resp.Frames))
		}
		return nil
	}

	if len(resp.Frames) == 0 {
		return fmt.Errorf("solved response has no frames")
	}
	if got := len(resp.Frames) - 1; got != resp.MoveCount {
		return fmt.Errorf("move_count is %d but there are %d frame transitions", resp.MoveCount, got)
	}
	if len(resp.Moves) != resp.MoveCount {
		return fmt.Errorf("move_count is %d but %d moves are listed", resp.MoveCount, len(resp.Moves))
	}

	// The path must start from the board as published by the catalog.
	if err := sameGrid(detail.Grid, resp.Frames[0]); err != nil {
		return fmt.Errorf("first frame: %w", err)
	}

	lengths := make(map[string]int, len(detail.Vehicles))
	for _, v := range detail.Vehicles {
		lengths[v.ID] = v.Length
	}

	totalCost := 0
	for i := 1; i < len(resp.Frames); i++ {
		vehicle, direction, span, err := diffStep(resp.Frames[i-1], resp.Frames[i])
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		move := resp.Moves[i-1]
		if move.Vehicle != string(vehicle) {
			return fmt.Errorf("step %d: frames slide %q but the move says %q", i, vehicle, move.Vehicle)
		}
		if move.Direction != direction {
			return fmt.Errorf("step %d: frames slide %s but the move says %s", i, direction, move.Direction)
		}
		if want, ok := lengths[move.Vehicle]; !ok || span != want {
			return fmt.Errorf("step %d: vehicle %s spans %d cells, the board says %d", i, move.Vehicle, span, want)
		}
		if move.Cost != span {
			return fmt.Errorf("step %d: cost is %d but vehicle %s has length %d", i, move.Cost, move.Vehicle, span)
		}
		totalCost += move.Cost
	}
	if totalCost != resp.Cost {
		return fmt.Errorf("moves sum to cost %d, response says %d", totalCost, resp.Cost)
	}

	return checkGoal(detail, resp.Frames[len(resp.Frames)-1])
}

// diffStep reconstructs the move between two consecutive frames. A vehicle
// of length L sliding one cell vacates its tail and occupies one new head
// cell, so a legal transition changes exactly two cells, L apart on a
// shared row or column. The returned span is that gap, which doubles as
// the moved vehicle's length.
func diffStep(prev, next []string) (vehicle byte, direction string, span int, err error) {
	if len(prev) != len(next) {
		return 0, "", 0, fmt.Errorf("frame height changed from %d to %d", len(prev), len(next))
	}

	type cell struct {
		x, y     int
		from, to byte
	}
	var changed []cell
	for y := range prev {
		if len(prev[y]) != len(next[y]) {
			return 0, "", 0, fmt.Errorf("row %d width changed from %d to %d", y, len(prev[y]), len(next[y]))
		}
		for x := 0; x < len(prev[y]); x++ {
			if prev[y][x] != next[y][x] {
				changed = append(changed, cell{x: x, y: y, from: prev[y][x], to: next[y][x]})
			}
		}
	}
	if len(changed) != 2 {
		return 0, "", 0, fmt.Errorf("expected one single-cell slide, found %d changed cells", len(changed))
	}

	var vac, occ *cell
	for i := range changed {
		switch {
		case changed[i].to == '.':
			vac = &changed[i]
		case changed[i].from == '.':
			occ = &changed[i]
		}
	}
	if vac == nil || occ == nil {
		return 0, "", 0, fmt.Errorf("changed cells are not a vacated/occupied pair")
	}
	if vac.from != occ.to {
		return 0, "", 0, fmt.Errorf("vacated %q but occupied %q", vac.from, occ.to)
	}

	vehicle = occ.to
	switch {
	case vac.y == occ.y && occ.x > vac.x:
		return vehicle, "right", occ.x - vac.x, nil
	case vac.y == occ.y:
		return vehicle, "left", vac.x - occ.x, nil
	case vac.x == occ.x && occ.y > vac.y:
		return vehicle, "down", occ.y - vac.y, nil
	case vac.x == occ.x:
		return vehicle, "up", vac.y - occ.y, nil
	}
	return 0, "", 0, fmt.Errorf("cells (%d,%d) and (%d,%d) share no row or column", vac.x, vac.y, occ.x, occ.y)
}

func sameGrid(want, got []string) error {
	if len(want) != len(got) {
		return fmt.Errorf("%d rows, board has %d", len(got), len(want))
	}
	for y := range want {
		if want[y] != got[y] {
			return fmt.Errorf("row %d is %q, board has %q", y, got[y], want[y])
		}
	}
	return nil
}

func checkGoal(detail *BoardDetail, last []string) error {
	if detail.Exit.Y < 0 || detail.Exit.Y >= len(last) {
		return fmt.Errorf("exit row %d is outside the %d-row frame", detail.Exit.Y, len(last))
	}
	row := last[detail.Exit.Y]
	if len(row) == 0 || row[len(row)-1] != targetID(detail) {
		return fmt.Errorf("final frame does not park the target at the exit: %q", row)
	}
	return nil
}

func targetID(detail *BoardDetail) byte {
	for _, v := range detail.Vehicles {
		if v.Target && v.ID != "" {
			return v.ID[0]
		}
	}
	return 'X'
}

// checkAgreement cross-checks every strategy's answer for one board. All
// strategies must agree on solvability, the fewest-moves strategies must
// report identical move counts, the minimum-cost strategies identical
// costs, and no strategy may beat the guaranteed optimum.
func checkAgreement(strategies []StrategyInfo, results map[string]*SolveResponse) []string {
	var problems []string

	bestMoves, bestMovesBy := -1, ""
	bestCost, bestCostBy := -1, ""
	foundBy, missedBy := "", ""

	for _, s := range strategies {
		resp, ok := results[s.ID]
		if !ok {
			continue // the request itself failed and was already reported
		}
		if !resp.Found {
			missedBy = s.ID
			continue
		}
		foundBy = s.ID

		if s.OptimalMoves {
			if bestMoves < 0 {
				bestMoves, bestMovesBy = resp.MoveCount, s.ID
			} else if resp.MoveCount != bestMoves {
				problems = append(problems, fmt.Sprintf("%s found %d moves but %s found %d, both claim fewest moves",
					s.ID, resp.MoveCount, bestMovesBy, bestMoves))
			}
		}
		if s.OptimalCost {
			if bestCost < 0 {
				bestCost, bestCostBy = resp.Cost, s.ID
			} else if resp.Cost != bestCost {
				problems = append(problems, fmt.Sprintf("%s found cost %d but %s found %d, both claim minimum cost",
					s.ID, resp.Cost, bestCostBy, bestCost))
			}
		}
	}

	if foundBy != "" && missedBy != "" {
		problems = append(problems, fmt.Sprintf("%s solved the board but %s reported no solution", foundBy, missedBy))
	}

	for _, s := range strategies {
		resp, ok := results[s.ID]
		if !ok || !resp.Found {
			continue
		}
		if bestMoves >= 0 && resp.MoveCount < bestMoves {
			problems = append(problems, fmt.Sprintf("%s finished in %d moves, beating the fewest-moves answer %d from %s",
				s.ID, resp.MoveCount, bestMoves, bestMovesBy))
		}
		if bestCost >= 0 && resp.Cost < bestCost {
			problems = append(problems, fmt.Sprintf("%s finished at cost %d, beating the minimum-cost answer %d from %s",
				s.ID, resp.Cost, bestCost, bestCostBy))
		}
	}

	return problems
}
