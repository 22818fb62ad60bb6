package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/entrypoint"
)

// LookupCommand resolves an ISBN through Open Library and stores the book locally.
type LookupCommand struct {
	ISBN         string
	DatabasePath string
	Timeout      time.Duration
}

func NewLookupCommand() *LookupCommand {
	return &LookupCommand{}
}

func (cmd *LookupCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)

	fs.StringVar(&cmd.ISBN, "isbn", "", "ISBN to look up (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")
	fs.DurationVar(&cmd.Timeout, "timeout", 30*time.Second, "Overall timeout for the lookup")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s lookup -isbn <isbn> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Fetch a book from Open Library by ISBN and store it unless it already exists.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s lookup -isbn 978-0-441-01359-3\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.ISBN == "" {
		return fmt.Errorf("required flag -isbn not provided")
	}

	return nil
}

func (cmd *LookupCommand) Run() error {
	cfg := config.NewConfig()
	cfg.Database.Path = cmd.DatabasePath

	app, err := entrypoint.NewApp(cfg, logger.Silent)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cmd.Timeout)
	defer cancel()

	book, err := app.Books.LookupByISBN(ctx, cmd.ISBN)
	if err != nil {
		return err
	}

	if book.ID == 0 {
		fmt.Println("Book already in the library, nothing stored")
	} else {
		fmt.Printf("Stored book with id %d\n", book.ID)
	}
	fmt.Printf("  Title:     %s\n", book.Title)
	if book.Subtitle != "" {
		fmt.Printf("  Subtitle:  %s\n", book.Subtitle)
	}
	fmt.Printf("  Author:    %s\n", book.Author)
	fmt.Printf("  Publisher: %s\n", book.Publisher)
	fmt.Printf("  Year:      %s\n", book.Year)
	fmt.Printf("  Pages:     %d\n", book.Pages)
	fmt.Printf("  ISBN:      %s\n", book.ISBN)

	return nil
}
