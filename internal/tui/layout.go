package tui

// Layout proportions
const (
	InspectorPercent  = 40 // share of the width given to the inspector
	MinInspectorWidth = 30
	MinGridWidth      = 34 // one card

	// Vertical chrome: header, pager and footer lines
	ChromeHeight = 4
)

// paneLayout holds calculated pane widths for the View
type paneLayout struct {
	gridWidth      int
	inspectorWidth int // 0 if not shown
}

// calculateLayout splits the width between the grid and the inspector
func (m Model) calculateLayout() paneLayout {
	if !m.ShowInspector {
		return paneLayout{gridWidth: m.Width}
	}

	inspector := max(m.Width*InspectorPercent/100, MinInspectorWidth)
	grid := m.Width - inspector
	if grid < MinGridWidth {
		// Too narrow for both; the inspector yields
		return paneLayout{gridWidth: m.Width}
	}
	return paneLayout{gridWidth: grid, inspectorWidth: inspector}
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := max(m.Height-ChromeHeight, 1)
	layout := m.calculateLayout()

	m.Grid.SetSize(layout.gridWidth-2, contentHeight)
	m.Inspector.SetSize(layout.inspectorWidth, contentHeight)
	m.Omnibar.SetSize(m.Width, m.Height)
	m.Search.Width = max(layout.gridWidth/2, 20)
}
