package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Zedyas/zen-data-explorer/internal/cursor"
	"github.com/Zedyas/zen-data-explorer/internal/dataset"
	"github.com/Zedyas/zen-data-explorer/internal/parser"
	"github.com/Zedyas/zen-data-explorer/internal/utils"
	"github.com/spf13/cobra"
)

var (
	pageSize   int
	pageTarget int
)

var pagesCmd = &cobra.Command{
	Use:   "pages <file>",
	Short: "Page through a CSV/TSV window with cursor navigation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := parser.LoadCSV(args[0], cfg.MaxRows)
		if err != nil {
			return err
		}
		if pageSize < 1 {
			return fmt.Errorf("invalid --size %d", pageSize)
		}

		f := windowFetcher{window: w, size: pageSize}
		c := cursor.New()
		p, err := c.JumpTo(context.Background(), pageTarget, f)
		if err != nil {
			return err
		}
		if p == nil {
			// page 0 needs no jump; fetch it directly
			first, err := f.FetchPage(context.Background(), c.Token())
			if err != nil {
				return err
			}
			p = &first
		}

		fmt.Printf("page %d/%d (%d rows of %d)\n", c.Page()+1, p.TotalPages, len(p.Rows), p.TotalRows)
		b, err := utils.PrettyJSON(p.Rows)
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	},
}

// windowFetcher serves fixed-size pages out of an in-memory window. Tokens
// are row offsets; the empty token addresses offset 0.
type windowFetcher struct {
	window *parser.Window
	size   int
}

func (f windowFetcher) FetchPage(_ context.Context, token string) (cursor.Page, error) {
	offset := 0
	if token != "" {
		n, err := strconv.Atoi(token)
		if err != nil || n < 0 {
			return cursor.Page{}, fmt.Errorf("bad cursor token %q", token)
		}
		offset = n
	}
	total := len(f.window.Rows)
	if offset > total {
		offset = total
	}
	end := offset + f.size
	if end > total {
		end = total
	}

	p := cursor.Page{
		Columns:      dataset.Names(f.window.Columns),
		Rows:         f.window.Rows[offset:end],
		TotalRows:    total,
		FilteredRows: total,
		TotalPages:   (total + f.size - 1) / f.size,
	}
	if end < total {
		p.NextCursor = strconv.Itoa(end)
	}
	if offset > 0 {
		prev := offset - f.size
		if prev < 0 {
			prev = 0
		}
		p.PrevCursor = strconv.Itoa(prev)
	}
	return p, nil
}

func init() {
	rootCmd.AddCommand(pagesCmd)
	pagesCmd.Flags().IntVar(&pageSize, "size", 50, "rows per page")
	pagesCmd.Flags().IntVar(&pageTarget, "page", 0, "zero-based page to jump to")
}
