// Command migration applies the SQL files under db/migrations to the
// database named by DB_URL.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	dir := flag.String("dir", "db/migrations", "directory holding the migration SQL files")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		log.Fatal("DB_URL is required")
	}

	migrator, err := newMigrator(*dir, dbURL)
	if err != nil {
		log.Fatalf("open migrator: %v", err)
	}
	defer func() {
		srcErr, dbErr := migrator.Close()
		if srcErr != nil {
			log.Printf("close source: %v", srcErr)
		}
		if dbErr != nil {
			log.Printf("close database: %v", dbErr)
		}
	}()

	if err := run(migrator, flag.Args()); err != nil {
		log.Fatal(err)
	}
}

func run(migrator *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		if err := migrator.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				log.Print("schema already current")
				return nil
			}
			return err
		}
		log.Print("schema migrated up")
		return nil
	case "down":
		steps := 1
		if len(args) > 1 {
			parsed, err := strconv.Atoi(args[1])
			if err != nil || parsed <= 0 {
				return fmt.Errorf("down wants a positive step count, got %q", args[1])
			}
			steps = parsed
		}
		if err := migrator.Steps(-steps); err != nil {
			return err
		}
		log.Printf("rolled back %d step(s)", steps)
		return nil
	case "version":
		version, dirty, err := migrator.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("no migrations applied")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("%d (dirty=%t)\n", version, dirty)
		return nil
	case "force":
		if len(args) < 2 {
			return errors.New("force wants a version")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil || version < 0 {
			return fmt.Errorf("force wants a non-negative version, got %q", args[1])
		}
		if err := migrator.Force(version); err != nil {
			return err
		}
		log.Printf("version forced to %d", version)
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func newMigrator(dir, dbURL string) (*migrate.Migrate, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s is not a migration directory", abs)
	}
	return migrate.New("file://"+filepath.ToSlash(abs), dbURL)
}

func usage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s [-dir path] <up | down [steps] | version | force <version>>\n", name)
	fmt.Fprintln(os.Stderr, "DB_URL must point at the target database.")
}
