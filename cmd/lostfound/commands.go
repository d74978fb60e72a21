package main

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/poiesic/lostfound"
	"github.com/poiesic/lostfound/core"
	"github.com/poiesic/lostfound/extract"
	"github.com/poiesic/lostfound/intake"
	"github.com/poiesic/lostfound/match"
	"github.com/poiesic/lostfound/privacy"
	"github.com/poiesic/lostfound/rederive"
	"github.com/poiesic/lostfound/search"
	"github.com/urfave/cli/v2"
)

type featuresOutput struct {
	ItemType    string   `yaml:"item_type,omitempty"`
	Brand       string   `yaml:"brand,omitempty"`
	Colors      []string `yaml:"colors,omitempty"`
	UniqueMarks []string `yaml:"unique_marks,omitempty"`
	Contained   []string `yaml:"contained,omitempty"`
	Identifiers int      `yaml:"identifiers"`
	Tokens      []string `yaml:"tokens"`
}

type reportOutput struct {
	Id            uint64 `yaml:"id"`
	Kind          string `yaml:"kind"`
	Title         string `yaml:"title"`
	Description   string `yaml:"description,omitempty"`
	LocationText  string `yaml:"location,omitempty"`
	EventTime     string `yaml:"event_time,omitempty"`
	DuplicateOf   uint64 `yaml:"duplicate_of,omitempty"`
	ClarifyKey    string `yaml:"clarify_key,omitempty"`
	ClarifyAnswer string `yaml:"clarify_answer,omitempty"`
}

type resultOutput struct {
	Id          uint64  `yaml:"id"`
	Score       float64 `yaml:"score"`
	Explanation string  `yaml:"explanation"`
}

type questionOutput struct {
	Key  string `yaml:"key"`
	Text string `yaml:"text"`
}

type matchesOutput struct {
	Report    uint64          `yaml:"report"`
	Ambiguous bool            `yaml:"ambiguous"`
	Results   []resultOutput  `yaml:"results"`
	Question  *questionOutput `yaml:"question,omitempty"`
}

type summaryOutput struct {
	Total       int    `yaml:"total"`
	Scanned     int    `yaml:"scanned"`
	Rewritten   int    `yaml:"rewritten"`
	ResumedFrom uint64 `yaml:"resumed_from,omitempty"`
	Elapsed     string `yaml:"elapsed"`
}

func newFeaturesOutput(fr *core.FeatureRecord) featuresOutput {
	return featuresOutput{
		ItemType:    fr.ItemType,
		Brand:       fr.Brand,
		Colors:      fr.Colors,
		UniqueMarks: fr.UniqueMarks,
		Contained:   fr.Contained,
		Identifiers: len(fr.Identifiers),
		Tokens:      fr.Tokens,
	}
}

func newReportOutput(v *search.View) reportOutput {
	return reportOutput{
		Id:            uint64(v.Id),
		Kind:          string(v.Kind),
		Title:         v.Title,
		Description:   v.Description,
		LocationText:  v.LocationText,
		EventTime:     v.EventTime,
		DuplicateOf:   uint64(v.DuplicateOf),
		ClarifyKey:    v.ClarifyKey,
		ClarifyAnswer: v.ClarifyAnswer,
	}
}

func newMatchesOutput(m *search.Matches) matchesOutput {
	out := matchesOutput{
		Report:    uint64(m.Report.Id),
		Ambiguous: m.Ambiguous,
		Results:   make([]resultOutput, 0, len(m.Results)),
	}
	for _, r := range m.Results {
		out.Results = append(out.Results, resultOutput{
			Id:          uint64(r.OtherId),
			Score:       math.Round(r.Score*1000) / 1000,
			Explanation: match.Explain(r),
		})
	}
	if m.Question != nil {
		out.Question = &questionOutput{Key: string(m.Question.FieldKey), Text: m.Question.Text}
	}
	return out
}

// textArg joins the positional arguments into one text.
func textArg(c *cli.Context) (string, error) {
	text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if text == "" {
		return "", fmt.Errorf("text is required")
	}
	return text, nil
}

// openDatabase opens the database named by --db with the thresholds from
// --config and the environment.
func openDatabase(c *cli.Context) (*lostfound.Database, error) {
	dbPath := c.String("db")
	if dbPath == "" {
		return nil, fmt.Errorf("database path is required")
	}

	cfg, err := loadMatchConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	db, err := lostfound.NewDatabase(dbPath,
		lostfound.WithMatchConfig(cfg),
		lostfound.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func extractCommand(c *cli.Context) error {
	text, err := textArg(c)
	if err != nil {
		return err
	}
	return writeYAML(c.App.Writer, newFeaturesOutput(extract.Extract(text)))
}

func maskCommand(c *cli.Context) error {
	text, err := textArg(c)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, privacy.MaskSensitive(text))
	return err
}

func submitCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIntakePipeline()
	if err != nil {
		return fmt.Errorf("failed to create intake pipeline: %w", err)
	}

	report, err := pipeline.Submit(c.Context, intake.Submission{
		Kind:         c.String("kind"),
		Title:        c.String("title"),
		Description:  c.String("description"),
		LocationText: c.String("location"),
		EventTime:    c.String("time"),
	})
	if err != nil {
		return fmt.Errorf("failed to submit report: %w", err)
	}
	return writeYAML(c.App.Writer, newReportOutput(search.NewView(report)))
}

func matchesCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	m, err := searcher.FindMatches(c.Context, core.ID(c.Uint64("id")))
	if err != nil {
		return fmt.Errorf("failed to find matches: %w", err)
	}
	return writeYAML(c.App.Writer, newMatchesOutput(m))
}

func answerCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIntakePipeline()
	if err != nil {
		return fmt.Errorf("failed to create intake pipeline: %w", err)
	}

	report, err := pipeline.Answer(c.Context, core.ID(c.Uint64("id")), c.String("key"), c.String("answer"))
	if err != nil {
		return fmt.Errorf("failed to apply answer: %w", err)
	}
	return writeYAML(c.App.Writer, newReportOutput(search.NewView(report)))
}

func showCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	view, err := searcher.MaskedView(c.Context, core.ID(c.Uint64("id")))
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}
	return writeYAML(c.App.Writer, newReportOutput(view))
}

func rederiveCommand(c *cli.Context) error {
	// Create rederive config
	config := &rederive.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		DryRun:         c.Bool("dry-run"),
	}

	// Validate config
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	rederiver, err := db.NewRederiver(config, c.App.ErrWriter)
	if err != nil {
		return fmt.Errorf("failed to create rederiver: %w", err)
	}

	summary, err := rederiver.Run(c.Context)
	if err != nil {
		return fmt.Errorf("rederive failed: %w", err)
	}
	return writeYAML(c.App.Writer, summaryOutput{
		Total:       summary.Total,
		Scanned:     summary.Scanned,
		Rewritten:   summary.Rewritten,
		ResumedFrom: uint64(summary.ResumedFrom),
		Elapsed:     summary.Elapsed.Round(time.Millisecond).String(),
	})
}

func configCommand(c *cli.Context) error {
	cfg, err := loadMatchConfig(c.String("config"))
	if err != nil {
		return err
	}
	return writeYAML(c.App.Writer, thresholdsOf(cfg))
}
