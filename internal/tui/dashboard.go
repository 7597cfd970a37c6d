// Package tui renders the terminal ops dashboard for the storefront server
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/thestorefront/storefront-engine/internal/cart"
	"github.com/thestorefront/storefront-engine/internal/catalog"
)

// Dashboard is the terminal dashboard shown while the server runs
type Dashboard struct {
	App     *tview.Application
	catalog *catalog.Catalog
	ledger  *cart.Ledger
	port    int

	flex *tview.Flex

	productsList *tview.List
	cartTable    *tview.Table
	statusBox    *tview.TextView
	logsArea     *tview.TextView
	commandInput *tview.InputField

	logs      []string
	maxLogs   int
	startTime time.Time
}

// NewDashboard creates the dashboard
func NewDashboard(cat *catalog.Catalog, ledger *cart.Ledger, port int) *Dashboard {
	app := tview.NewApplication()

	d := &Dashboard{
		App:       app,
		catalog:   cat,
		ledger:    ledger,
		port:      port,
		logs:      make([]string, 0),
		maxLogs:   100,
		startTime: time.Now(),
	}

	d.setupUI()
	return d
}

func (d *Dashboard) setupUI() {
	d.productsList = tview.NewList()
	d.productsList.SetBorder(true)
	d.productsList.SetTitle("Catalog")

	d.cartTable = tview.NewTable()
	d.cartTable.SetBorder(true)
	d.cartTable.SetTitle("Cart")

	d.statusBox = tview.NewTextView()
	d.statusBox.SetBorder(true)
	d.statusBox.SetTitle("Server Status")
	d.statusBox.SetDynamicColors(true)

	d.logsArea = tview.NewTextView()
	d.logsArea.SetBorder(true)
	d.logsArea.SetTitle("Server Logs")
	d.logsArea.SetDynamicColors(true)
	d.logsArea.SetScrollable(true)
	d.logsArea.SetChangedFunc(func() {
		d.App.Draw()
	})

	d.commandInput = tview.NewInputField().
		SetLabel("> ").
		SetFieldWidth(0).
		SetPlaceholder("Type a command (e.g., 'help')").
		SetDoneFunc(func(key tcell.Key) {
			if key == tcell.KeyEnter {
				d.executeCommand(d.commandInput.GetText())
				d.commandInput.SetText("")
			}
		})

	topRow := tview.NewFlex().
		AddItem(d.productsList, 0, 1, false).
		AddItem(d.cartTable, 0, 1, false).
		AddItem(d.statusBox, 0, 1, false)

	bottom := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(d.logsArea, 0, 3, false).
		AddItem(d.commandInput, 1, 0, true)

	d.flex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 1, false).
		AddItem(bottom, 0, 1, false)

	d.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if d.commandInput.HasFocus() {
			if event.Key() == tcell.KeyEsc {
				d.App.SetFocus(d.productsList)
				return nil
			}
			return event
		}

		switch event.Key() {
		case tcell.KeyCtrlC, tcell.KeyEsc:
			d.App.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case ':':
				d.App.SetFocus(d.commandInput)
				return nil
			case 'q':
				d.App.Stop()
				return nil
			}
		}
		return event
	})

	d.App.SetRoot(d.flex, true)
}

// Run starts the dashboard (blocking)
func (d *Dashboard) Run() error {
	d.refreshAll()

	go d.refreshTicker()

	return d.App.Run()
}

func (d *Dashboard) refreshTicker() {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		d.App.QueueUpdateDraw(func() {
			d.refreshAll()
		})
	}
}

func (d *Dashboard) refreshAll() {
	d.refreshProducts()
	d.refreshCart()
	d.refreshStatus()
}

func (d *Dashboard) refreshProducts() {
	d.productsList.Clear()

	products := d.catalog.Products()
	if len(products) == 0 {
		d.productsList.AddItem("No products loaded", "", 0, nil)
		return
	}

	for _, p := range products {
		stock := "in stock"
		if !p.IsInStock {
			stock = "out of stock"
		}
		details := fmt.Sprintf("%s • %.2f • %s", p.Brand, p.EffectivePrice(), stock)
		d.productsList.AddItem(p.Name, details, 0, nil)
	}
}

func (d *Dashboard) refreshCart() {
	d.cartTable.Clear()

	d.cartTable.SetCell(0, 0, tview.NewTableCell("Product").SetAlign(tview.AlignCenter).SetSelectable(false))
	d.cartTable.SetCell(0, 1, tview.NewTableCell("Qty").SetAlign(tview.AlignCenter).SetSelectable(false))
	d.cartTable.SetCell(0, 2, tview.NewTableCell("Price").SetAlign(tview.AlignCenter).SetSelectable(false))
	d.cartTable.SetCell(0, 3, tview.NewTableCell("Total").SetAlign(tview.AlignCenter).SetSelectable(false))

	state := d.ledger.State()
	for i, line := range state.Lines {
		row := i + 1
		d.cartTable.SetCell(row, 0, tview.NewTableCell(line.Name))
		d.cartTable.SetCell(row, 1, tview.NewTableCell(fmt.Sprintf("%d", line.Quantity)))
		d.cartTable.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%.2f", line.UnitPrice)))
		d.cartTable.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("%.2f", line.UnitPrice*float64(line.Quantity))))
	}

	if len(state.Lines) > 0 {
		summaryRow := len(state.Lines) + 1
		cell := tview.NewTableCell(fmt.Sprintf("Subtotal: %.2f", state.Subtotal()))
		cell.SetSelectable(false)
		d.cartTable.SetCell(summaryRow, 0, cell)
	}
}

func (d *Dashboard) refreshStatus() {
	uptime := time.Since(d.startTime)
	hours := int(uptime.Hours())
	minutes := int(uptime.Minutes()) % 60

	status := fmt.Sprintf(`[green]Running[white]

Uptime: %dh %dm
API: :%d
Products: %d
Cart lines: %d`, hours, minutes, d.port, d.catalog.Len(), len(d.ledger.Lines()))

	d.statusBox.SetText(status)
}

func (d *Dashboard) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	command := strings.ToLower(parts[0])

	d.AddLog(fmt.Sprintf("> %s", cmd), "command")

	switch command {
	case "cart", "c":
		d.refreshCart()
		state := d.ledger.State()
		d.AddLog(fmt.Sprintf("%d line(s), subtotal %.2f", len(state.Lines), state.Subtotal()), "info")

	case "products", "p":
		d.refreshProducts()
		d.AddLog(fmt.Sprintf("%d product(s) loaded", d.catalog.Len()), "info")

	case "status", "s":
		d.refreshStatus()

	case "clear":
		d.logs = make([]string, 0)
		d.logsArea.Clear()

	case "refresh":
		d.refreshAll()

	case "help", "h", "?":
		d.showHelp()

	case "quit", "q":
		d.App.Stop()

	default:
		d.AddLog(fmt.Sprintf("Unknown command: %s. Type 'help' for available commands.", command), "error")
	}
}

func (d *Dashboard) showHelp() {
	help := []string{
		"Available commands:",
		"  cart, c       - Show cart summary",
		"  products, p   - Refresh catalog panel",
		"  status, s     - Refresh server status",
		"  clear         - Clear logs",
		"  refresh       - Refresh all panels",
		"  help, h, ?    - Show this help",
		"  quit, q       - Exit application",
	}
	d.AddLog(strings.Join(help, "\n"), "info")
}

// AddLog adds a log entry to the console panel
func (d *Dashboard) AddLog(message string, level string) {
	var color string

	switch level {
	case "error":
		color = "[red]"
	case "warning":
		color = "[yellow]"
	case "command":
		color = "[cyan]"
	default:
		color = "[white]"
	}

	timeStr := time.Now().Format("15:04:05")
	logEntry := fmt.Sprintf("%s[%s] %s[white]\n", color, timeStr, message)

	d.logs = append(d.logs, logEntry)
	if len(d.logs) > d.maxLogs {
		d.logs = d.logs[len(d.logs)-d.maxLogs:]
	}

	d.logsArea.Clear()
	for _, log := range d.logs {
		fmt.Fprint(d.logsArea, log)
	}

	d.logsArea.ScrollToEnd()
}

// LogWriter creates an io.Writer that feeds the console panel, so the
// structured logger can tee into the dashboard.
func (d *Dashboard) LogWriter() io.Writer {
	return &dashboardLogWriter{dash: d}
}

type dashboardLogWriter struct {
	dash *Dashboard
}

func (w *dashboardLogWriter) Write(p []byte) (n int, err error) {
	message := strings.TrimSpace(string(p))
	if message != "" {
		w.dash.AddLog(message, "info")
	}
	return len(p), nil
}
