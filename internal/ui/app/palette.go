package app

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	routinedto "cronos/internal/modules/routine/dto"
)

// executePalette runs one palette line. Keep the verbs in sync with components/palette.go.
func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := func(n int) string { return strings.Join(parts[n:], " ") }
	routineID, hasRoutine := m.routineView.SelectedRoutineID()
	block, blockIdx, hasBlock := m.routineView.SelectedBlock()

	switch parts[0] {
	case "start":
		if !hasRoutine {
			m.status = "no routine selected"
			return m, nil
		}
		return m, m.startCmd(routineID)

	case "pause":
		return m, m.sessionCmd(m.session.TogglePause)

	case "skip":
		return m, m.sessionCmd(m.session.Skip)

	case "adjust":
		if len(parts) < 2 {
			m.status = "usage: adjust <+/-seconds>"
			return m, nil
		}
		delta, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid seconds"
			return m, nil
		}
		return m, m.adjustCmd(delta)

	case "abort":
		m.confirm.Open(confirmQuitSession, "Quit this session? It will be recorded as aborted.")
		return m, nil

	case "routine:new":
		if len(parts) < 3 {
			m.status = "usage: routine:new <name> <KIND:seconds>..."
			return m, nil
		}
		blocks := make([]routinedto.BlockInput, 0, len(parts)-2)
		for _, spec := range parts[2:] {
			b, err := routinedto.ParseBlockSpec(spec)
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			blocks = append(blocks, b)
		}
		name := parts[1]
		return m, m.editCmd("created", -1, func(ctx context.Context) (routinedto.RoutineDetailOutput, error) {
			return m.routines.Create(ctx, name, blocks)
		})
	}

	if !hasRoutine {
		m.status = "no routine selected"
		return m, nil
	}

	switch parts[0] {
	case "routine:rename":
		if len(parts) < 2 {
			m.status = "usage: routine:rename <name>"
			return m, nil
		}
		name := rest(1)
		return m, m.editCmd("renamed", -1, func(ctx context.Context) (routinedto.RoutineDetailOutput, error) {
			return m.routines.Rename(ctx, routineID, name)
		})

	case "routine:delete":
		m.confirm.Open(confirmDeleteRoutine, "Delete routine "+strconv.Quote(m.routineView.SelectedRoutineName())+"?")
		return m, nil

	case "block:add":
		if len(parts) < 3 {
			m.status = "usage: block:add <kind> <seconds> [name]"
			return m, nil
		}
		seconds, err := strconv.Atoi(parts[2])
		if err != nil {
			m.status = "invalid seconds"
			return m, nil
		}
		kind := parts[1]
		name := routinedto.DefaultBlockName(kind)
		if len(parts) > 3 {
			name = rest(3)
		}
		return m, m.editCmd("added block", -1, func(ctx context.Context) (routinedto.RoutineDetailOutput, error) {
			return m.routines.AddBlock(ctx, routineID, name, seconds, kind, nil)
		})
	}

	if !hasBlock {
		m.status = "no block selected"
		return m, nil
	}

	switch parts[0] {
	case "block:edit":
		if len(parts) < 2 {
			m.status = "usage: block:edit <seconds> [name]"
			return m, nil
		}
		seconds, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid seconds"
			return m, nil
		}
		input := routinedto.UpdateBlockInput{RoutineID: routineID, BlockID: block.ID, Duration: &seconds}
		if len(parts) > 2 {
			name := rest(2)
			input.Name = &name
		}
		return m, m.editCmd("edited block", blockIdx, func(ctx context.Context) (routinedto.RoutineDetailOutput, error) {
			return m.routines.UpdateBlock(ctx, input)
		})

	case "block:dup":
		return m, m.editCmd("duplicated", -1, func(ctx context.Context) (routinedto.RoutineDetailOutput, error) {
			return m.routines.DuplicateBlock(ctx, routineID, block.ID)
		})

	case "block:rm":
		return m, m.editCmd("removed block", -1, func(ctx context.Context) (routinedto.RoutineDetailOutput, error) {
			return m.routines.RemoveBlock(ctx, routineID, block.ID)
		})

	case "block:up":
		return m, m.moveCmd(routineID, blockIdx, -1)

	case "block:down":
		return m, m.moveCmd(routineID, blockIdx, 1)
	}

	m.status = "unknown command: " + parts[0]
	return m, nil
}
