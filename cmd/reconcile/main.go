// Command reconcile runs one reconciliation pass over three local CSV files
// and writes the two output tables, without going through the HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/timalander/cuebox-takehome/internal/reconcile"
	"github.com/timalander/cuebox-takehome/internal/tagstore"
)

func main() {
	var (
		constituentsPath = flag.String("constituents", "", "path to the constituents CSV (required)")
		donationsPath    = flag.String("donations", "", "path to the donation-history CSV (required)")
		emailsPath       = flag.String("emails", "", "path to the supplemental email CSV (required)")
		outDir           = flag.String("out-dir", ".", "directory for the two output CSVs")
		tagServiceURL    = flag.String("tag-service", envOrDefault("TAG_SERVICE_BASE_URL", ""), "tag vocabulary service base URL (required)")
		workers          = flag.Int("workers", 4, "concurrent resolutions")
		debug            = flag.Bool("debug", false, "print every resolved profile")
	)
	flag.Parse()

	if *constituentsPath == "" || *donationsPath == "" || *emailsPath == "" || *tagServiceURL == "" {
		flag.Usage()
		os.Exit(2)
	}

	input := reconcile.Input{}
	for _, f := range []struct {
		path string
		dst  *[]byte
	}{
		{*constituentsPath, &input.Constituents},
		{*donationsPath, &input.Donations},
		{*emailsPath, &input.Emails},
	} {
		data, err := os.ReadFile(f.path)
		if err != nil {
			fatalf("read %s: %v", f.path, err)
		}
		*f.dst = data
	}

	tagClient := tagstore.NewClient(tagstore.Config{
		BaseURL:    *tagServiceURL,
		Timeout:    30 * time.Second,
		MaxRetries: 3,
	})
	engine := reconcile.NewEngine(tagClient, *workers)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := engine.Run(ctx, input)
	if err != nil {
		fatalf("reconciliation failed: %v", err)
	}

	constOut := filepath.Join(*outDir, "constituents_processed.csv")
	tagsOut := filepath.Join(*outDir, "tag_counts.csv")
	if err := os.WriteFile(constOut, res.ConstituentsCSV, 0644); err != nil {
		fatalf("write %s: %v", constOut, err)
	}
	if err := os.WriteFile(tagsOut, res.TagsCSV, 0644); err != nil {
		fatalf("write %s: %v", tagsOut, err)
	}

	fmt.Println("=========================================================")
	fmt.Println(" Constituent Reconciliation")
	fmt.Println("=========================================================")
	fmt.Printf("Run ID:         %s\n", res.RunID)
	fmt.Printf("Profiles:       %d\n", len(res.Profiles))
	fmt.Printf("Distinct tags:  %d\n", len(res.TagCounts))
	fmt.Printf("Duration:       %s\n", res.Duration)
	fmt.Printf("Outputs:        %s, %s\n", constOut, tagsOut)

	if *debug {
		fmt.Println("---------------------------------------------------------")
		for _, p := range res.Profiles {
			fmt.Printf("%s  %-7s  %s %s%s  tags=%q\n",
				p.ConstituentID, p.ConstituentType, p.FirstName, p.LastName, p.CompanyName, p.Tags)
		}
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "FATAL: "+format+"\n", args...)
	os.Exit(1)
}
