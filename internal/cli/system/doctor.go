package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/osolodkova/tracker/internal/backup"
	"github.com/osolodkova/tracker/internal/cli"
	"github.com/osolodkova/tracker/internal/constants"
	"github.com/osolodkova/tracker/internal/storage"
	"github.com/osolodkova/tracker/internal/utils"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Settings timezone valid
	if dbReachable {
		if err := checkTimezone(ctx); err != nil {
			fmt.Printf("❌ Timezone setting: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Timezone setting: OK\n")
		}
	} else {
		fmt.Printf("⊘ Timezone setting: SKIPPED (database not reachable)\n")
	}

	// Check 3: Orphaned records
	if dbReachable {
		if err := checkOrphanedRecords(ctx); err != nil {
			fmt.Printf("❌ Record integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Record integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Record integrity: SKIPPED (database not reachable)\n")
	}

	// Check 4: Dangling category references (warning only)
	if dbReachable {
		if err := checkDanglingCategories(ctx); err != nil {
			fmt.Printf("⚠ Category references: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Category references: OK\n")
		}
	} else {
		fmt.Printf("⊘ Category references: SKIPPED (database not reachable)\n")
	}

	// Check 5: Completed-day counters match records
	if dbReachable {
		if err := checkCounters(ctx); err != nil {
			fmt.Printf("⚠ Completed-day counters: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Completed-day counters: OK\n")
		}
	} else {
		fmt.Printf("⊘ Completed-day counters: SKIPPED (database not reachable)\n")
	}

	// Check 6: Backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 7: Clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ System clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ System clock: OK\n")
	}

	// Check 8: Duplicate tracker processes (warning only)
	if err := checkDuplicateProcess(); err != nil {
		fmt.Printf("⚠ Single instance: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Single instance: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkTimezone(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if settings.Timezone == "" {
		return fmt.Errorf("timezone is not set, run 'tracker settings timezone Local'")
	}
	if _, err := utils.LoadLocation(settings.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	return nil
}

func checkOrphanedRecords(ctx *cli.Context) error {
	trackers, err := ctx.Store.GetAllTrackers()
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(trackers))
	for _, t := range trackers {
		known[t.ID] = true
	}

	records, err := ctx.Store.GetAllRecords()
	if err != nil {
		return err
	}
	orphaned := 0
	for _, r := range records {
		if !known[r.TrackerID] {
			orphaned++
		}
	}
	if orphaned > 0 {
		return fmt.Errorf("%d record(s) reference trackers that no longer exist", orphaned)
	}
	return nil
}

func checkDanglingCategories(ctx *cli.Context) error {
	categories, err := ctx.Store.GetAllCategories()
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}

	trackers, err := ctx.Store.GetAllTrackers()
	if err != nil {
		return err
	}
	dangling := 0
	for _, t := range trackers {
		if t.CategoryID != "" && !known[t.CategoryID] {
			dangling++
		}
	}
	if dangling > 0 {
		return fmt.Errorf("%d tracker(s) reference deleted categories and are hidden from the filtered view", dangling)
	}
	return nil
}

func checkCounters(ctx *cli.Context) error {
	trackers, err := ctx.Store.GetAllTrackers()
	if err != nil {
		return err
	}
	records, err := ctx.Store.GetAllRecords()
	if err != nil {
		return err
	}

	daysByTracker := make(map[string]map[string]bool)
	for _, r := range records {
		day := r.Date.Format(constants.DateFormat)
		if daysByTracker[r.TrackerID] == nil {
			daysByTracker[r.TrackerID] = make(map[string]bool)
		}
		daysByTracker[r.TrackerID][day] = true
	}

	mismatched := 0
	for _, t := range trackers {
		if t.CompletedDays != len(daysByTracker[t.ID]) {
			mismatched++
		}
	}
	if mismatched > 0 {
		return fmt.Errorf("%d tracker(s) have a completed-day counter that does not match their records", mismatched)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	if storage.IsPostgresTarget(path) {
		return fmt.Errorf("backups are not managed for the PostgreSQL backend")
	}
	backups, err := backup.NewManager(path).ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, run 'tracker backup' to create one")
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock reports %s, which is implausible", now.Format(time.RFC3339))
	}
	return nil
}

// checkDuplicateProcess warns when another tracker process is running, since
// the storage layer assumes single-process access.
func checkDuplicateProcess() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %v", err)
	}

	self := os.Getpid()
	name := filepath.Base(os.Args[0])
	count := 0
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.EqualFold(p.Executable(), name) {
			count++
		}
	}
	if count > 0 {
		return fmt.Errorf("%d other %s process(es) running", count, name)
	}
	return nil
}
