package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"crowdfunding-etl/config"
	"crowdfunding-etl/models"
	"crowdfunding-etl/services"
	"crowdfunding-etl/source"
	"crowdfunding-etl/sqlgen"
	"crowdfunding-etl/storage"
	"crowdfunding-etl/utils"
)

// erdTables is the table order used for the ERD listing.
var erdTables = []string{"campaign", "contacts", "category", "subcategory"}

type app struct {
	cfg     *config.Config
	logger  *utils.Logger
	out     io.Writer
	report  *models.RunReport
	reports *services.ReportService
}

func main() {
	cfg := config.Load()
	a := &app{
		cfg:    cfg,
		logger: utils.NewLogger(cfg.Debug),
		out:    os.Stdout,
		report: &models.RunReport{},
	}
	a.reports = services.NewReportService(a.logger)

	if err := a.rootCmd().Execute(); err != nil {
		a.logger.Error("%v", err)
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "crowdfunding-etl",
		Short:         "Normalize crowdfunding and contact spreadsheets into CSV tables and SQL scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runAll,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Export every table, then write the schema and import scripts",
			Args:  cobra.NoArgs,
			RunE:  a.runAll,
		},
		&cobra.Command{
			Use:   "etl",
			Short: "Export category, subcategory and campaign tables",
			Args:  cobra.NoArgs,
			RunE:  a.withReport(a.runCampaigns),
		},
		&cobra.Command{
			Use:   "contacts",
			Short: "Export the contacts table",
			Args:  cobra.NoArgs,
			RunE:  a.withReport(a.runContacts),
		},
		&cobra.Command{
			Use:   "schema",
			Short: "Print the ERD listing and write the schema script",
			Args:  cobra.NoArgs,
			RunE:  a.withReport(a.runSchema),
		},
		&cobra.Command{
			Use:   "import",
			Short: "Write the COPY import script",
			Args:  cobra.NoArgs,
			RunE:  a.withReport(a.runImport),
		},
	)
	return root
}

func (a *app) withReport(step func() error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := step(); err != nil {
			return err
		}
		a.reports.Print(cmd.OutOrStdout(), a.report)
		return nil
	}
}

func (a *app) runAll(cmd *cobra.Command, _ []string) error {
	a.logger.Info("=== Crowdfunding ETL starting ===")
	a.logger.Info("Config — input: %s | output: %s | contact parser: %s | timezone: %s",
		a.cfg.InputDir, a.cfg.OutputDir, a.cfg.ContactParser, a.cfg.Timezone)

	for _, step := range []func() error{a.runCampaigns, a.runContacts, a.runSchema, a.runImport} {
		if err := step(); err != nil {
			return err
		}
	}

	a.reports.Print(cmd.OutOrStdout(), a.report)
	return nil
}

func (a *app) csvWriter() (storage.TableWriter, error) {
	return storage.NewCSVWriter(a.cfg.OutputDir, a.logger)
}

func (a *app) runCampaigns() error {
	loc, err := a.cfg.Location()
	if err != nil {
		return err
	}

	raw, err := source.New(a.logger).Campaigns(a.cfg.CrowdfundingPath())
	if err != nil {
		return err
	}

	tables, err := services.NewCampaignTransformer(a.logger, loc).Run(raw)
	if err != nil {
		return err
	}
	a.reports.AddCampaigns(a.report, len(raw), tables)

	w, err := a.csvWriter()
	if err != nil {
		return err
	}

	path, err := w.WriteCategories(tables.Categories)
	if err != nil {
		return err
	}
	a.reports.AddTable(a.report, storage.CategoryTable, path, len(tables.Categories))

	path, err = w.WriteSubcategories(tables.Subcategories)
	if err != nil {
		return err
	}
	a.reports.AddTable(a.report, storage.SubcategoryTable, path, len(tables.Subcategories))

	path, err = w.WriteCampaigns(tables.Campaigns)
	if err != nil {
		return err
	}
	a.reports.AddTable(a.report, storage.CampaignTable, path, len(tables.Campaigns))
	return nil
}

func (a *app) runContacts() error {
	parser, err := services.NewContactParser(a.cfg.ContactParser)
	if err != nil {
		return fmt.Errorf("config: CONTACT_PARSER: %w", err)
	}

	raw, err := source.New(a.logger).Contacts(a.cfg.ContactsPath(), a.cfg.ContactsHeaderRow)
	if err != nil {
		return err
	}

	contacts, err := services.NewContactCleaner(a.logger, parser).Clean(raw)
	if err != nil {
		return err
	}
	a.reports.AddContacts(a.report, len(raw), parser.Name())

	w, err := a.csvWriter()
	if err != nil {
		return err
	}
	path, err := w.WriteContacts(contacts)
	if err != nil {
		return err
	}
	a.reports.AddTable(a.report, storage.ContactsTable, path, len(contacts))
	return nil
}

func (a *app) scriptWriter() (storage.ScriptWriter, error) {
	return storage.NewFileScriptWriter(a.cfg.SQLDir, a.logger)
}

func (a *app) runSchema() error {
	gen := sqlgen.NewGenerator(a.cfg.OutputDir, a.logger)

	erd, err := gen.ERDListing(erdTables)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, erd)

	text, err := gen.SchemaScript(a.cfg.TableOrder)
	if err != nil {
		return err
	}

	sw, err := a.scriptWriter()
	if err != nil {
		return err
	}
	path, err := sw.WriteScript(a.cfg.SchemaFile, text)
	if err != nil {
		return err
	}
	a.report.Scripts = append(a.report.Scripts, path)
	return nil
}

func (a *app) runImport() error {
	text, err := sqlgen.NewGenerator(a.cfg.OutputDir, a.logger).ImportScript(a.cfg.TableOrder)
	if err != nil {
		return err
	}

	sw, err := a.scriptWriter()
	if err != nil {
		return err
	}
	path, err := sw.WriteScript(a.cfg.ImportFile, text)
	if err != nil {
		return err
	}
	a.report.Scripts = append(a.report.Scripts, path)
	return nil
}
