// Package cmd implements the command-line interface for cutplay.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cutplay-cli/cutplay/filesystem"
	"github.com/cutplay-cli/cutplay/icon"
	"github.com/cutplay-cli/cutplay/key"
	"github.com/cutplay-cli/cutplay/media"
	"github.com/cutplay-cli/cutplay/style"
	"github.com/cutplay-cli/cutplay/timeline"
	"github.com/cutplay-cli/cutplay/util"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cutplay-cli/cutplay/color"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Int64P("duration", "d", 0, "Real media duration in milliseconds, as a backend would report it")
	inspectCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	inspectCmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	inspectCmd.SetOut(os.Stdout)

	inspectCmd.AddCommand(inspectSchemaCmd)
	inspectSchemaCmd.SetOut(os.Stdout)
}

// inspectCut summarizes the active cut window of a report.
type inspectCut struct {
	Start    int64 `json:"start"`
	End      int64 `json:"end"`
	Duration int64 `json:"duration"`
}

// inspectReport is the serializable result of inspecting a media
// descriptor: its points of interest filtered against the cut window
// and rebased onto cut-relative time.
type inspectReport struct {
	ID        media.IDList            `json:"mediaId"`
	Duration  int64                   `json:"duration"`
	Cut       *inspectCut             `json:"cut,omitempty"`
	Chapters  []media.PointOfInterest `json:"chapters"`
	Tags      []media.PointOfInterest `json:"tags"`
	Timecodes []media.Timecode        `json:"timecodes,omitempty"`
}

// inspectCmd reads a media descriptor and reports what a viewer would
// actually see once the cut window applies.
var inspectCmd = &cobra.Command{
	Use:   "inspect [media file]",
	Short: "Report the cut window and the visible points of interest of a media descriptor",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			duration = lo.Must(cmd.Flags().GetInt64("duration"))
			asJson   = lo.Must(cmd.Flags().GetBool("json"))
			output   = lo.Must(cmd.Flags().GetString("output"))
		)

		m := readMedia(args[0])

		tl := timeline.New()
		handleErr(tl.SetMedia(m))
		if duration > 0 {
			tl.SetRealDuration(duration)
		}
		if !viper.GetBool(key.PlayerCutsEnabled) {
			tl.SetCutsEnabled(false)
		}

		report := buildReport(m, tl)

		if output != "" {
			data := lo.Must(json.MarshalIndent(report, "", "  "))
			handleErr(afero.WriteFile(filesystem.API(), output, append(data, '\n'), 0644))
			cmd.Printf("%s wrote report to %s\n", icon.Get(icon.Success), output)
			return
		}

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			lo.Must0(encoder.Encode(report))
			return
		}

		printReport(cmd, report)
	},
}

// inspectSchemaCmd prints the JSON schema of the media descriptor format.
var inspectSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the media descriptor format",
	Run: func(cmd *cobra.Command, args []string) {
		schema := jsonschema.Reflect(&media.Media{})
		cmd.Println(string(lo.Must(json.MarshalIndent(schema, "", "  "))))
	},
}

func readMedia(path string) *media.Media {
	data, err := afero.ReadFile(filesystem.API(), path)
	handleErr(err)

	var m media.Media
	handleErr(json.Unmarshal(data, &m))
	return &m
}

func buildReport(m *media.Media, tl *timeline.Timeline) inspectReport {
	report := inspectReport{
		ID:       m.ID,
		Duration: tl.Duration(),
		Chapters: tl.PointsOfInterest(timeline.CollectionChapters),
		Tags:     tl.PointsOfInterest(timeline.CollectionTags),
	}

	if tl.CutsEnabled() {
		report.Cut = &inspectCut{
			Start:    tl.CutStart(),
			End:      tl.CutEnd(),
			Duration: tl.CutDuration(),
		}
	}

	if limit := viper.GetInt(key.InspectTagRelevanceLimit); limit > 0 && len(report.Tags) > limit {
		report.Tags = report.Tags[:limit]
	}

	if viper.GetBool(key.InspectShowTimecodes) {
		report.Timecodes = tl.Timecodes()
	}

	return report
}

func printReport(cmd *cobra.Command, report inspectReport) {
	header := style.New().Bold(true).Foreground(color.HiPurple).Render

	cmd.Printf("%s %s\n", header("Media"), style.Fg(color.Yellow)(fmt.Sprintf("%v", []string(report.ID))))

	if report.Cut != nil {
		cmd.Printf(
			"%s %s %s - %s %s\n",
			icon.Get(icon.Cut),
			header("Cut"),
			util.FormatMillis(report.Cut.Start),
			util.FormatMillis(report.Cut.End),
			style.Faint(fmt.Sprintf("(%s visible)", util.FormatMillis(report.Cut.Duration))),
		)
	} else {
		cmd.Printf("%s %s\n", icon.Get(icon.Cut), style.Faint("no active cut window"))
	}

	if report.Duration > 0 {
		cmd.Printf("%s %s\n", header("Duration"), util.FormatMillis(report.Duration))
	}

	printPoints := func(title string, points []media.PointOfInterest) {
		cmd.Println()
		cmd.Printf("%s %s\n", header(title), style.Faint(util.Quantify(len(points), "entry", "entries")))
		for _, point := range points {
			cmd.Printf(
				"%s %s %s\n",
				icon.Get(icon.Marker),
				style.Fg(color.Blue)(util.FormatMillis(point.Value)),
				point.Name,
			)
		}
	}

	printPoints("Chapters", report.Chapters)
	printPoints("Tags", report.Tags)

	if report.Timecodes != nil {
		cmd.Println()
		cmd.Printf("%s %s\n", header("Timecodes"), style.Faint(util.Quantify(len(report.Timecodes), "entry", "entries")))
		for _, tc := range report.Timecodes {
			cmd.Printf(
				"%s %s %s\n",
				icon.Get(icon.Marker),
				style.Fg(color.Blue)(util.FormatMillis(tc.Timecode)),
				style.Faint(tc.Image.Small),
			)
		}
	}
}
