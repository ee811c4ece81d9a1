package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	handlerEmotion "github.com/zhouzirui/emotion-detector/internal/handler/emotion"
	model "github.com/zhouzirui/emotion-detector/internal/model/emotion"
)

var dominantColor = color.New(color.FgGreen, color.Bold)

// printTable renders one row per emotion in the fixed order, marking the dominant one.
func printTable(w io.Writer, scores model.Scores) error {
	if !scores.HasDominant() {
		_, err := fmt.Fprintln(w, "no emotion scores available")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Emotion", "Score", "Dominant"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, name := range model.Order {
		mark := ""
		label := string(name)
		if label == scores.DominantEmotion {
			mark = "✔"
			label = dominantColor.Sprint(label)
		}
		data = append(data, []string{
			label,
			strconv.FormatFloat(scores.Value(name), 'f', -1, 64),
			mark,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, handlerEmotion.FormatMessage(scores))
	return err
}

func printJSON(w io.Writer, scores model.Scores) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(scores)
}
