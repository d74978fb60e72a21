package main

import (
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"

	"github.com/poiesic/lostfound"
	"github.com/poiesic/lostfound/intake"
	"gopkg.in/yaml.v3"
)

// samples is a small lost and found desk used when no seed file is given.
var samples = []intake.Submission{
	{Kind: "lost", Title: "black leather wallet", Description: "contains id card, bank card, some cash", LocationText: "central library 2nd floor", EventTime: "2025-03-01T10:00:00Z"},
	{Kind: "found", Title: "wallet", Description: "black, has a student id inside", LocationText: "library reading room", EventTime: "2025-03-01T14:30:00Z"},
	{Kind: "lost", Title: "phone", Description: "blue samsung with cracked screen and a cat sticker", LocationText: "bus stop near gate 2", EventTime: "2025-03-02T08:15:00Z"},
	{Kind: "found", Title: "samsung galaxy", Description: "navy case, screen broken", LocationText: "gate 2", EventTime: "2025-03-02T09:00:00Z"},
	{Kind: "found", Title: "iphone", Description: "black, no case", LocationText: "cafeteria", EventTime: "2025-03-02T12:00:00Z"},
	{Kind: "lost", Title: "keys", Description: "three keys on a red keyring", LocationText: "parking lot b", EventTime: "2025-03-03T18:00:00Z"},
	{Kind: "found", Title: "keychain", Description: "red ring with keys", LocationText: "parking lot", EventTime: "2025-03-04T07:45:00Z"},
	{Kind: "lost", Title: "earbuds", Description: "white airpods in charging case, engraved initials", LocationText: "gym locker room", EventTime: "2025-03-05T17:20:00Z"},
	{Kind: "found", Title: "airpods case", Description: "white", LocationText: "gym", EventTime: "2025-03-05T19:00:00Z"},
	{Kind: "lost", Title: "umbrella", Description: "transparent see through umbrella", LocationText: "main auditorium", EventTime: "2025-03-06T11:00:00Z"},
	{Kind: "found", Title: "clear umbrella", LocationText: "auditorium entrance", EventTime: "2025-03-06T13:00:00Z"},
	{Kind: "lost", Title: "water bottle", Description: "green steel flask with dent", LocationText: "sports field", EventTime: "2025-03-07T16:00:00Z"},
}

// seedReport is one entry of a YAML seed file.
type seedReport struct {
	Kind        string `yaml:"kind"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Location    string `yaml:"location"`
	Time        string `yaml:"time"`
}

var (
	seedFileName = flag.String("src", "", "YAML file of seed reports")
	dbPath       = flag.String("db", "./lostfound_db", "database directory")
)

// submissionsFromFile returns an iterator over the reports in a YAML file.
func submissionsFromFile(filename string) (iter.Seq[intake.Submission], error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var reports []seedReport
	if err := yaml.Unmarshal(data, &reports); err != nil {
		return nil, err
	}

	return func(yield func(intake.Submission) bool) {
		for _, r := range reports {
			sub := intake.Submission{
				Kind:         r.Kind,
				Title:        r.Title,
				Description:  r.Description,
				LocationText: r.Location,
				EventTime:    r.Time,
			}
			if !yield(sub) {
				return
			}
		}
	}, nil
}

// submissionsFromSlice returns an iterator over a slice of submissions.
func submissionsFromSlice(subs []intake.Submission) iter.Seq[intake.Submission] {
	return func(yield func(intake.Submission) bool) {
		for _, sub := range subs {
			if !yield(sub) {
				return
			}
		}
	}
}

// seed submits every report from source in order and returns how many were stored.
func seed(ctx context.Context, pipeline *intake.Pipeline, source iter.Seq[intake.Submission]) (int, error) {
	stored := 0
	for sub := range source {
		report, err := pipeline.Submit(ctx, sub)
		if err != nil {
			return stored, err
		}
		stored++
		slog.Info("seeded report", "id", report.Id, "kind", report.Kind, "duplicate_of", report.DuplicateOf)
	}
	return stored, nil
}

func main() {
	flag.Parse()
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	db, err := lostfound.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	pipeline, err := db.NewIntakePipeline()
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[intake.Submission]
	if *seedFileName != "" {
		source, err = submissionsFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = submissionsFromSlice(samples)
	}

	if _, err := seed(ctx, pipeline, source); err != nil {
		panic(err)
	}
}
