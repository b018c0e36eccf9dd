// wlstat prints distribution stats for a generated waiting list, as a quick
// eyeball check that a dataset looks sane before loading it anywhere.
// Usage: go run ./cmd/wlstat --dataset out/ds1
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gyeh/orsynth/internal/model"
	"github.com/gyeh/orsynth/internal/parquetio"
)

func main() {
	dir := flag.String("dataset", "", "dataset directory written by orsynth generate")
	file := flag.String("file", "", "waiting list parquet file (overrides --dataset)")
	topN := flag.Int("top", 10, "cards to show in the frequency table")
	flag.Parse()

	path := *file
	if path == "" {
		if *dir == "" {
			fmt.Fprintln(os.Stderr, "need --dataset or --file")
			os.Exit(1)
		}
		path = filepath.Join(*dir, model.WaitingListTbl+".parquet")
	}

	rows, err := parquetio.ReadAll[model.WaitingListRow](path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read waiting list: %v\n", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Println("waiting list is empty")
		return
	}

	cardCounts := make(map[string]int)
	surgeonCounts := make(map[int32]int)
	admCounts := make(map[string]int)
	var durSum, durMin, durMax float64
	var losSum, losN int
	var tsMin, tsMax int64

	for i, r := range rows {
		cardCounts[r.Card]++
		surgeonCounts[r.Surgeon]++
		admCounts[r.Admission]++
		durSum += r.DurationMin
		if i == 0 || r.DurationMin < durMin {
			durMin = r.DurationMin
		}
		if i == 0 || r.DurationMin > durMax {
			durMax = r.DurationMin
		}
		if r.LOSDays > 0 {
			losSum += int(r.LOSDays)
			losN++
		}
		if i == 0 || r.RequestedAt < tsMin {
			tsMin = r.RequestedAt
		}
		if i == 0 || r.RequestedAt > tsMax {
			tsMax = r.RequestedAt
		}
	}

	fmt.Printf("Entries:   %d (%d cards, %d surgeons)\n",
		len(rows), len(cardCounts), len(surgeonCounts))
	fmt.Printf("Duration:  mean %.1f min, range %.1f .. %.1f\n",
		durSum/float64(len(rows)), durMin, durMax)
	fmt.Printf("Requested: %s .. %s\n",
		time.Unix(tsMin, 0).UTC().Format("2006-01-02"),
		time.Unix(tsMax, 0).UTC().Format("2006-01-02"))

	fmt.Println("\nAdmission mix:")
	adms := make([]string, 0, len(admCounts))
	for a := range admCounts {
		adms = append(adms, a)
	}
	sort.Strings(adms)
	for _, a := range adms {
		fmt.Printf("  %-6s %6d (%.1f%%)\n", a, admCounts[a],
			100*float64(admCounts[a])/float64(len(rows)))
	}
	if losN > 0 {
		fmt.Printf("Mean LOS (admitted): %.1f days\n", float64(losSum)/float64(losN))
	}

	type cc struct {
		card string
		n    int
	}
	cards := make([]cc, 0, len(cardCounts))
	for c, n := range cardCounts {
		cards = append(cards, cc{c, n})
	}
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].n != cards[j].n {
			return cards[i].n > cards[j].n
		}
		return cards[i].card < cards[j].card
	})
	if len(cards) > *topN {
		cards = cards[:*topN]
	}
	fmt.Printf("\nTop %d cards:\n", len(cards))
	for _, c := range cards {
		fmt.Printf("  %-16s %5d (%.1f%%)\n", c.card, c.n,
			100*float64(c.n)/float64(len(rows)))
	}
}
