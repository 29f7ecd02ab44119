package main

import (
	"fmt"
	"os"

	"xsdinfo/internal/analysis"
	"xsdinfo/internal/config"
	"xsdinfo/internal/convert"
	"xsdinfo/internal/publish"
	"xsdinfo/internal/report"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "xsdinfo",
		Short: "XML schema analysis toolkit",
	}
	cfgFile string
	debug   bool
	asTable bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Print resolution progress and the full definition table")

	analyseCmd.Flags().BoolVar(&asTable, "table", false, "Render the report as an aligned table instead of TSV")
	teiCmd.Flags().BoolVar(&asTable, "table", false, "Render the report as an aligned table instead of TSV")

	rootCmd.AddCommand(analyseCmd)
	rootCmd.AddCommand(teiCmd)
	rootCmd.AddCommand(fromrelaxCmd)
	rootCmd.AddCommand(publishCmd)
}

// loadConfig reads the configuration and raises the log level when
// debugging is asked for on the command line or in the config file.
func loadConfig() *config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Debug {
		debug = true
	}
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return cfg
}

var analyseCmd = &cobra.Command{
	Use:   "analyse <schema.xsd>",
	Short: "List the elements a schema defines, with kind and content",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		loadConfig()
		runAnalysis(args[0], "")
	},
}

var teiCmd = &cobra.Command{
	Use:   "tei [override.xsd]",
	Short: "Analyse the complete TEI schema, optionally merged with a customised override",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		override := ""
		if len(args) > 0 {
			override = args[0]
		}
		runAnalysis(cfg.TEI.SchemaPath, override)
	},
}

var fromrelaxCmd = &cobra.Command{
	Use:   "fromrelax <schema.rng>",
	Short: "Convert a RelaxNG schema to XSD with trang",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		opts := convert.Options{JavaBin: cfg.Trang.JavaBin, TrangJar: cfg.Trang.JarPath}
		out, err := convert.FromRelax(opts, args[0])
		if err != nil {
			logrus.Fatalf("Conversion failed: %v", err)
		}
		logrus.Infof("Converted %s to %s", args[0], out)
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish <inputDir> <outputDir>",
	Short: "Convert notebooks to HTML and assemble a publishable tree",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		pub := publish.NewPublisher(publish.NbConvert{Bin: cfg.Publish.NbConvertBin})
		res, err := pub.Run(args[0], args[1])
		if err != nil {
			logrus.Fatalf("Publishing failed: %v", err)
		}
		logrus.Infof("Converted %d notebooks, copied %d files to %s", len(res.Converted), len(res.Copied), args[1])
	},
}

// runAnalysis drives extraction, resolution and the optional override
// merge, then prints the element report on stdout. Diagnostics go
// through the logger so the report stays pipeable.
func runAnalysis(baseSchema, overrideSchema string) {
	a, err := analysis.Run(baseSchema, overrideSchema)
	if err != nil {
		logrus.Fatalf("Analysis failed: %v", err)
	}

	logDiagnostics(a.Base)
	if a.Override != nil {
		logDiagnostics(a.Override)
	}

	rows := report.Rows(a.Merged)
	if asTable {
		report.WriteTable(os.Stdout, rows)
	} else {
		fmt.Println(report.TSV(rows))
	}
	logrus.Infof("%3d elements defined", len(rows))

	if a.Override != nil {
		same, changed := a.OverrideCounts()
		logrus.Infof("%3d identical overrides", same)
		logrus.Infof("%3d changing overrides", changed)
		for _, tr := range a.ChangedOverrides() {
			logrus.Infof("%s %s", tr.Name, tr.Desc)
		}
		for _, name := range a.OverrideOnly {
			logrus.Warnf("%s is only defined in the override schema", name)
		}
	}

	if debug {
		logrus.Debugf("full definition table for %s", a.Base.Path)
		report.WriteDump(os.Stderr, a.Merged, a.Base.Redefined)
		if a.Override != nil {
			logrus.Debugf("full definition table for %s", a.Override.Path)
			report.WriteDump(os.Stderr, a.Override.Table, a.Override.Redefined)
		}
	}
}

// logDiagnostics renders the advisory values collected while analysing
// one schema.
func logDiagnostics(sr *analysis.SchemaResult) {
	for _, round := range sr.Resolution.Rounds {
		logrus.Debugf("round %3d: %3d changes", round.Round, round.Changes)
	}
	for _, w := range sr.Resolution.Warnings {
		logrus.Warnf("%s", w)
	}
}
