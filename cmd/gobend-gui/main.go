package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/cobra"

	"github.com/philipparndt/gobend/internal/bend"
	"github.com/philipparndt/gobend/internal/config"
	"github.com/philipparndt/gobend/internal/dies"
	"github.com/philipparndt/gobend/internal/sequence"
	"github.com/philipparndt/gobend/internal/session"
	"github.com/philipparndt/gobend/internal/viewer"
	"github.com/philipparndt/gobend/pkg/geometry"
	"github.com/philipparndt/gobend/pkg/watcher"
	"github.com/philipparndt/gobend/version"
)

var (
	configPath string
	watchFile  bool
)

var rootCmd = &cobra.Command{
	Use:     "gobend-gui [file]",
	Short:   "Interactive bend sequence builder",
	Args:    cobra.MaximumNArgs(1),
	Version: version.GetFullVersion(),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		file := ""
		if len(args) > 0 {
			file = args[0]
		}
		run(cfg, file)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the configuration file")
	rootCmd.Flags().BoolVar(&watchFile, "watch", false, "Reload the drawing when the file changes")
}

// App holds the window state of the builder
type App struct {
	window  fyne.Window
	cfg     *config.Config
	log     *slog.Logger
	session *session.Session
	view    *viewer.DrawingView
	watcher *watcher.FileWatcher

	dataset   *bend.Dataset
	dieConfig *dies.Config

	file        string
	selectedRow int
	rowCount    int

	table        *widget.Table
	fieldSelect  *widget.Select
	valueEntry   *widget.Entry
	thicknessSel *widget.Select
	widthSel     *widget.Select
	materialSel  *widget.Select
	cursorLabel  *widget.Label
	totalsLabel  *widget.Label
	drawingLabel *widget.Label
	calculateBtn *widget.Button
}

func run(cfg *config.Config, file string) {
	logger := cfg.NewLogger(os.Stderr)
	a := app.New()
	w := a.NewWindow("GoBend - Bend Sequence Builder")
	appInstance := newApp(w, cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if watchFile {
		appInstance.startWatcher(ctx)
	}

	if file != "" {
		appInstance.loadFile(file)
	}

	w.Resize(fyne.NewSize(1400, 900))
	w.ShowAndRun()

	if appInstance.watcher != nil {
		_ = appInstance.watcher.Close()
	}
}

// newApp builds the window content around a fresh session
func newApp(w fyne.Window, cfg *config.Config, logger *slog.Logger) *App {
	a := &App{
		window:      w,
		cfg:         cfg,
		log:         logger,
		session:     session.New(session.OptionsFromConfig(cfg), logger),
		selectedRow: -1,
	}
	a.loadData()
	a.setupMainUI()
	return a
}

// loadData reads the training data and die configuration. Both are optional
// for browsing a drawing; without training data Calculate stays disabled.
func (a *App) loadData() {
	dataset, err := bend.LoadDataset(a.cfg.Data.TrainingFile)
	if err != nil {
		a.log.Warn("training data unavailable", "path", a.cfg.Data.TrainingFile, "error", err)
	} else {
		a.dataset = dataset
		a.session.SetPredictor(bend.NewNearestPredictor(dataset, a.cfg.Data.Neighbours))
	}

	dieConfig, err := dies.Load(a.cfg.Data.DieConfigFile)
	if err != nil {
		a.log.Warn("die configuration unreadable", "path", a.cfg.Data.DieConfigFile, "error", err)
		dieConfig = dies.NewConfig()
	}
	a.dieConfig = dieConfig
}

func (a *App) startWatcher(ctx context.Context) {
	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce, a.log)
	if err != nil {
		a.log.Warn("file watching disabled", "error", err)
		return
	}
	a.watcher = fw
	go fw.Run(ctx)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadFile(filename string) {
	skipped, err := a.session.LoadFile(filename)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to load drawing: %w", err), a.window)
		return
	}
	if len(skipped) > 0 {
		a.log.Warn("records skipped", "file", filename, "count", len(skipped))
	}

	if a.watcher != nil && filename != a.file {
		if a.file != "" {
			_ = a.watcher.Unwatch(a.file)
		}
		if err := a.watcher.Watch(filename, a.onFileChanged); err != nil {
			a.log.Warn("cannot watch drawing", "file", filename, "error", err)
		}
	}
	a.file = filename
	a.selectedRow = -1
	a.drawingLabel.SetText(fmt.Sprintf("%s (%d skipped)", a.session.Name(), len(skipped)))
}

// onFileChanged runs on the watcher's timer goroutine
func (a *App) onFileChanged(path string) {
	fyne.Do(func() {
		a.log.Info("reloading drawing", "file", path)
		a.loadFile(path)
	})
}

func (a *App) setupMainUI() {
	a.view = viewer.NewDrawingView(a.session, a.cfg.View.ClickThreshold)
	a.cursorLabel = widget.NewLabel("x: -  y: -")
	a.totalsLabel = widget.NewLabel("Length: 0.00")
	a.totalsLabel.TextStyle = fyne.TextStyle{Bold: true}
	a.drawingLabel = widget.NewLabel("No drawing loaded")

	a.view.SetOnCursor(func(p geometry.Vector2) {
		a.cursorLabel.SetText(fmt.Sprintf("x: %.2f  y: %.2f", p.X, p.Y))
	})
	a.view.SetOnError(func(err error) {
		a.showError(err)
	})

	a.session.OnSequenceChanged(func(ev session.SequenceEvent) {
		// inserted or removed rows shift the indexes below them
		if count := len(a.session.Entries()); count != a.rowCount {
			a.rowCount = count
			a.selectedRow = -1
			a.table.UnselectAll()
		}
		a.table.Refresh()
		a.updateTotals(ev)
	})

	a.table = widget.NewTable(
		func() (int, int) { return len(a.session.Rows()), 3 },
		func() fyne.CanvasObject { return widget.NewLabel("00000.00") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			rows := a.session.Rows()
			if id.Row >= len(rows) {
				return
			}
			o.(*widget.Label).SetText(rows[id.Row].Cells()[id.Col])
		},
	)
	a.table.CreateHeader = func() fyne.CanvasObject { return widget.NewLabel("Length") }
	a.table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		if id.Row == -1 {
			o.(*widget.Label).SetText([]string{"Length", "Angle", "BD"}[id.Col])
		} else {
			o.(*widget.Label).SetText(strconv.Itoa(id.Row + 1))
		}
	}
	a.table.ShowHeaderRow = true
	a.table.ShowHeaderColumn = true
	a.table.SetColumnWidth(0, 110)
	a.table.SetColumnWidth(1, 80)
	a.table.SetColumnWidth(2, 80)
	a.table.OnSelected = a.onRowSelected

	a.fieldSelect = widget.NewSelect(
		[]string{string(sequence.FieldAngle), string(sequence.FieldPosition)},
		nil)
	a.fieldSelect.SetSelected(string(sequence.FieldAngle))
	a.valueEntry = widget.NewEntry()
	a.valueEntry.SetPlaceHolder("value")
	a.valueEntry.OnSubmitted = func(string) { a.applyEdit() }

	a.materialSel = widget.NewSelect(materialOptions(), nil)
	a.materialSel.SetSelected(string(bend.MaterialMild))
	a.widthSel = widget.NewSelect(nil, nil)
	a.thicknessSel = widget.NewSelect(a.thicknessOptions(), func(value string) {
		a.updateWidths(value)
	})

	a.calculateBtn = widget.NewButton("Calculate", a.calculate)
	if a.dataset == nil {
		a.calculateBtn.Disable()
	}

	openButton := widget.NewButton("Open File", a.showFileDialog)
	resetButton := widget.NewButton("Reset View", func() {
		a.showError(a.session.ResetView())
	})
	addButton := widget.NewButton("Add Row", func() {
		row, err := a.session.AddRow()
		if err != nil {
			a.showError(err)
			return
		}
		a.table.Select(widget.TableCellID{Row: row, Col: 1})
	})
	removeButton := widget.NewButton("Remove Row", func() {
		if a.selectedRow < 0 {
			return
		}
		if err := a.session.RemoveRow(a.selectedRow); err != nil {
			a.showError(err)
			return
		}
		a.selectedRow = -1
		a.table.UnselectAll()
	})
	applyButton := widget.NewButton("Apply", a.applyEdit)

	lightCheck := widget.NewCheck("Light background", func(checked bool) {
		if checked {
			a.view.SetPalette(viewer.LightPalette)
		} else {
			a.view.SetPalette(viewer.DefaultPalette)
		}
	})

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Click a yellow bend line to add or remove it\n" +
			"• Drag to pan, scroll to zoom\n" +
			"• Select a row to edit its angle\n" +
			"• Click the + row to add a manual segment",
	)
	instructions.Wrapping = fyne.TextWrapWord

	form := widget.NewForm(
		widget.NewFormItem("Thickness", a.thicknessSel),
		widget.NewFormItem("Die width", a.widthSel),
		widget.NewFormItem("Material", a.materialSel),
	)

	sidePanel := container.NewBorder(
		container.NewVBox(
			a.drawingLabel,
			widget.NewSeparator(),
			form,
			a.calculateBtn,
			widget.NewSeparator(),
			container.NewGridWithColumns(2, addButton, removeButton),
			container.NewBorder(nil, nil, a.fieldSelect, applyButton, a.valueEntry),
		),
		container.NewVBox(
			widget.NewSeparator(),
			a.totalsLabel,
			widget.NewSeparator(),
			instructions,
			lightCheck,
			container.NewGridWithColumns(2, openButton, resetButton),
		),
		nil, nil,
		a.table,
	)

	split := container.NewHSplit(a.view, sidePanel)
	split.Offset = 0.7

	a.window.SetContent(container.NewBorder(nil, a.cursorLabel, nil, nil, split))
}

func (a *App) onRowSelected(id widget.TableCellID) {
	entries := a.session.Entries()
	if id.Row >= len(entries) {
		// placeholder row
		row, err := a.session.AddRow()
		if err != nil {
			a.showError(err)
			return
		}
		a.table.Select(widget.TableCellID{Row: row, Col: 1})
		return
	}
	a.selectedRow = id.Row
	entry := entries[id.Row]
	if sequence.Field(a.fieldSelect.Selected) == sequence.FieldPosition {
		a.valueEntry.SetText(fmt.Sprintf("%.2f", entry.Position))
	} else {
		a.valueEntry.SetText(entry.Angle)
	}
}

func (a *App) applyEdit() {
	if a.selectedRow < 0 {
		return
	}
	field, err := sequence.ParseField(a.fieldSelect.Selected)
	if err != nil {
		a.showError(err)
		return
	}
	row, err := a.session.EditRow(a.selectedRow, field, a.valueEntry.Text)
	if err != nil {
		a.showError(err)
		return
	}
	if row != a.selectedRow {
		a.table.Select(widget.TableCellID{Row: row, Col: 1})
	}
}

func (a *App) calculate() {
	params, err := a.params()
	if err != nil {
		a.showError(err)
		return
	}
	a.session.SetParams(params)
	if _, err := a.session.Calculate(); err != nil {
		a.showError(err)
	}
}

func (a *App) params() (sequence.Params, error) {
	thickness, err := strconv.ParseFloat(a.thicknessSel.Selected, 64)
	if err != nil {
		return sequence.Params{}, errors.New("select a sheet thickness")
	}
	width, err := strconv.ParseFloat(a.widthSel.Selected, 64)
	if err != nil {
		return sequence.Params{}, errors.New("select a die width")
	}
	material, err := bend.ParseMaterial(a.materialSel.Selected)
	if err != nil {
		return sequence.Params{}, err
	}
	return sequence.Params{Thickness: thickness, Width: width, Material: material}, nil
}

func (a *App) updateTotals(ev session.SequenceEvent) {
	if ev.Err != nil {
		a.totalsLabel.SetText(fmt.Sprintf("Length: %.2f\nCalculation failed: %v", ev.TotalLength, ev.Err))
		return
	}
	a.totalsLabel.SetText(fmt.Sprintf(
		"Length: %.2f\nBend deduction: %.2f\nEffective length: %.2f",
		ev.TotalLength, ev.TotalBD, ev.EffectiveLength))
}

func (a *App) thicknessOptions() []string {
	if a.dataset == nil {
		return nil
	}
	return formatFloats(a.dataset.Thicknesses())
}

func (a *App) updateWidths(thicknessText string) {
	thickness, err := strconv.ParseFloat(thicknessText, 64)
	if err != nil || a.dataset == nil {
		a.widthSel.SetOptions(nil)
		return
	}
	widths := a.dieConfig.AllowedWidths(thickness, a.dataset.WidthsFor(thickness))
	a.widthSel.SetOptions(formatFloats(widths))
	a.widthSel.ClearSelected()
	if len(widths) > 0 {
		a.widthSel.SetSelectedIndex(0)
	}
}

func (a *App) showError(err error) {
	if err == nil {
		return
	}
	var consistency *session.ConsistencyError
	if errors.As(err, &consistency) {
		a.log.Error("selection and sequence disagree", "error", err)
	}
	dialog.ShowError(err, a.window)
}

func materialOptions() []string {
	options := make([]string, len(bend.Materials))
	for i, m := range bend.Materials {
		options[i] = string(m)
	}
	return options
}

func formatFloats(values []float64) []string {
	options := make([]string, len(values))
	for i, v := range values {
		options[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return options
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
