// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"career-workers/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

func main() {
	syncCmd := flag.NewFlagSet("sync", flag.ExitOnError)
	syncPath := syncCmd.String("path", defaultRegistryPath, "Path to registry file")

	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validatePath := validateCmd.String("path", defaultRegistryPath, "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "sync":
		syncCmd.Parse(os.Args[2:])
		changed, err := syncRegistry(*syncPath, time.Now())
		if err != nil {
			fmt.Printf("Error syncing registry: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry synced: %d activities changed.\n", changed)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateRegistry(*validatePath); err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Registry validation passed.")

	case "help":
		fallthrough
	default:
		help()
	}
}

// syncRegistry writes an entry for every worker into the registry at path and
// returns how many entries were added or changed.
func syncRegistry(path string, now time.Time) (int, error) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return 0, fmt.Errorf("failed to load registry: %w", err)
		}
		reg = &registry.ActivityRegistry{Version: activityVersion}
	}

	changed := 0
	for _, d := range descriptors() {
		activity, err := d.activity()
		if err != nil {
			return 0, fmt.Errorf("activity %s: %w", d.taskType, err)
		}
		if reg.Upsert(activity) {
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}

	reg.LastUpdated = now.UTC().Format(time.RFC3339)
	return changed, registry.Save(reg, path)
}

func validateRegistry(path string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return err
	}

	known := make(map[string]bool)
	for _, d := range descriptors() {
		known[d.taskType] = true
	}
	for _, activity := range reg.Activities {
		if !known[activity.TaskType] {
			return fmt.Errorf("activity %s has no worker for task type %s", activity.ID, activity.TaskType)
		}
	}
	return nil
}

func help() {
	fmt.Println(`
Usage: registry-updater <command> [flags]

Commands:
  sync     Write every worker's task type, input schema and error codes into the registry
  validate Validate the registry file against the known workers
  help     Show this help message

Examples:
  registry-updater sync -path configs/activity-registry.json
  registry-updater validate -path configs/activity-registry.json`)
}
