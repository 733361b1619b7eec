package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clinicavida/roster/internal/config"
	"github.com/clinicavida/roster/pkg/clients/sheetsclient"
	"github.com/clinicavida/roster/pkg/core/services"
	"github.com/clinicavida/roster/pkg/core/validate"
	"github.com/clinicavida/roster/pkg/db"
	"github.com/clinicavida/roster/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *db.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "ClinicaVida roster CLI - Generate and manage monthly shift schedules",
		Long:  `A CLI tool for generating monthly shift schedules, recording absences, and publishing the finished grid.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.database != nil {
					app.database.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(generateScheduleCmd())
	rootCmd.AddCommand(validateScheduleCmd())
	rootCmd.AddCommand(publishScheduleCmd())
	rootCmd.AddCommand(minimumHoursCmd())
	rootCmd.AddCommand(addStaffCmd())
	rootCmd.AddCommand(listStaffCmd())
	rootCmd.AddCommand(addAbsenceCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and the database connection
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.New(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.logger.Info("Loading configuration")
	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.logger.Info("Connecting to database")
	app.database, err = db.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := app.database.RunMigrations(app.ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.logger.Info("Database initialized successfully")

	return nil
}

// parseYearMonth reads a year and a calendar month (1-12) from command args
// and returns the zero-based month index the engine works with
func parseYearMonth(args []string) (int, int, error) {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("year must be a number: %w", err)
	}
	month, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("month must be a number: %w", err)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	return year, month - 1, nil
}

// Command definitions

func generateScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule <year> <month>",
		Short: "Generate the shift schedule for a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseYearMonth(args)
			if err != nil {
				return err
			}
			seed, _ := cmd.Flags().GetInt64("seed")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			result, err := services.GenerateSchedule(app.ctx, app.database, app.cfg, app.logger, year, month, services.GenerateOptions{
				DryRun: dryRun,
				Seed:   seed,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Schedule generated for %d/%02d\n\n", result.Year, result.Month+1)
			if result.Coverage.Skipped {
				fmt.Println("⚠️  Emergency coverage skipped: not enough staff for one full day")
			}
			if len(result.Coverage.Shortfalls) > 0 {
				fmt.Printf("⚠️  %d coverage shortfalls (see validation report)\n", len(result.Coverage.Shortfalls))
			}
			printReport(result.Report)
			if result.Saved {
				fmt.Println("Schedule persisted.")
			} else {
				fmt.Println("Dry run: schedule not persisted.")
			}

			return nil
		},
	}

	cmd.Flags().Int64("seed", 0, "Seed for random decisions (0 = time-based)")
	cmd.Flags().Bool("dry-run", false, "Run without saving to database")

	return cmd
}

func validateScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validateSchedule <year> <month>",
		Short: "Validate the persisted schedule for a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseYearMonth(args)
			if err != nil {
				return err
			}

			report, err := services.ValidateSchedule(app.ctx, app.database, app.cfg, app.logger, year, month)
			if err != nil {
				return err
			}

			printReport(report)
			return nil
		},
	}
}

func publishScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publishSchedule <year> <month>",
		Short: "Publish the persisted schedule to the schedule sheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseYearMonth(args)
			if err != nil {
				return err
			}

			oauthCfg, err := config.LoadOAuthClient()
			if err != nil {
				return fmt.Errorf("failed to load OAuth client config: %w", err)
			}
			sheetsClient, err := sheetsclient.NewClient(app.ctx, oauthCfg)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			if err := services.PublishSchedule(app.ctx, app.database, sheetsClient, app.cfg, app.logger, year, month); err != nil {
				return err
			}

			fmt.Printf("\n✓ Schedule for %d/%02d published\n", year, month+1)
			return nil
		},
	}
}

func minimumHoursCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "minimumHours <year> <month>",
		Short: "Show the legal minimum monthly hours for a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseYearMonth(args)
			if err != nil {
				return err
			}

			result, err := services.ComputeMinimumMonthlyHours(app.cfg, app.logger, year, month)
			if err != nil {
				return err
			}

			fmt.Printf("\nMinimum hours for %d/%02d: %d (%d working days)\n",
				year, month+1, result.MinimumHours, result.WorkingDays)
			return nil
		},
	}
}

func addStaffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addStaff <name> <department>",
		Short: "Add a staff member (department: emergency or inpatient)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			specialty, _ := cmd.Flags().GetString("specialty")
			birthDate, _ := cmd.Flags().GetString("birth-date")
			email, _ := cmd.Flags().GetString("email")

			id, err := services.AddStaff(app.ctx, app.database, app.logger, services.AddStaffArgs{
				Name:       args[0],
				Department: args[1],
				Specialty:  specialty,
				BirthDate:  birthDate,
				Email:      email,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Staff member added (id %s)\n", id)
			return nil
		},
	}

	cmd.Flags().String("specialty", "", "Specialty (required for inpatient staff)")
	cmd.Flags().String("birth-date", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().String("email", "", "Email address")

	return cmd
}

func listStaffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listStaff",
		Short: "List all staff members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			staff, err := services.ListStaff(app.ctx, app.database, app.logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d staff members:\n\n", len(staff))
			for _, s := range staff {
				specialtyInfo := ""
				if s.Specialty != "" {
					specialtyInfo = fmt.Sprintf(" - %s", s.Specialty)
				}
				fmt.Printf("- %s (%s) - %s%s\n", s.Name, s.ID, s.Department, specialtyInfo)
			}

			return nil
		},
	}
}

func addAbsenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addAbsence <staff_id> <kind> <start_date>",
		Short: "Record an absence event (kind: vacation, family_day, calamity, personal_leave, incapacity)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			end, _ := cmd.Flags().GetString("end")
			note, _ := cmd.Flags().GetString("note")

			id, err := services.AddAbsence(app.ctx, app.database, app.logger, services.AddAbsenceArgs{
				StaffID: args[0],
				Kind:    args[1],
				Start:   args[2],
				End:     end,
				Note:    note,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Absence event recorded (id %s)\n", id)
			return nil
		},
	}

	cmd.Flags().String("end", "", "End date for vacations (YYYY-MM-DD)")
	cmd.Flags().String("note", "", "Free-text note")

	return cmd
}

// printReport writes the validation outcome in a human-readable form
func printReport(report *validate.Report) {
	if report.Valid {
		fmt.Println("✓ Schedule is valid")
	} else {
		fmt.Printf("✗ Schedule has %d errors:\n", len(report.Errors))
		for _, e := range report.Errors {
			fmt.Printf("  ✗ %s\n", e)
		}
	}
	if len(report.Warnings) > 0 {
		fmt.Printf("\n⚠️  %d warnings:\n", len(report.Warnings))
		for _, w := range report.Warnings {
			fmt.Printf("  ⚠ %s\n", w)
		}
	}

	if len(report.Stats.Staff) > 0 {
		fmt.Printf("\nEmergency department statistics:\n")
		for _, s := range report.Stats.Staff {
			fmt.Printf("  %-25s %3dh  %2d shifts (%d day / %d night)\n",
				s.Name, s.HoursWorked, s.TotalShifts, s.DayShifts, s.NightShifts)
		}
		fmt.Printf("  Averages: %dh, %d day shifts, %d night shifts\n",
			report.Stats.AverageHours, report.Stats.AverageDayShifts, report.Stats.AverageNightShifts)
	}
	fmt.Println()
}
