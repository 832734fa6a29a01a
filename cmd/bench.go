package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"ttdialect/internal/dialect"
	"ttdialect/internal/engine"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	skipSetup   bool
	createTable bool
	sampleRows  int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the TPTBM read/insert/update benchmark",
	Long: `Runs the TimesTen quickstart TPTBM workload: empties and repopulates
the TPTBM table with key_count x key_count rows, then starts num_threads
workers that each run num_xacts single-operation transactions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Fetch bench settings from Viper (Flag > Config > Default)
		cfg := engine.Config{
			KeyCount:       viper.GetInt("bench.key_count"),
			NumXacts:       viper.GetInt("bench.num_xacts"),
			NumThreads:     viper.GetInt("bench.num_threads"),
			PercentReads:   viper.GetInt("bench.percent_reads"),
			PercentInserts: viper.GetInt("bench.percent_inserts"),
			Seed:           viper.GetInt64("bench.seed"),
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// 0. Get Dialect
		d, err := currentDialect()
		if err != nil {
			return err
		}
		log.Printf("Using Dialect: %s\n", d.Name())

		db, err := connect(ctx)
		if err != nil {
			return err
		}

		w, err := engine.NewWorkload(db, d, cfg, dialectProperties(d))
		if err != nil {
			return err
		}

		if createTable {
			log.Println("Creating TPTBM table...")
			if err := w.CreateTable(ctx); err != nil {
				return err
			}
		}

		// 1. Setup
		if !skipSetup {
			total := cfg.KeyCount * cfg.KeyCount
			log.Printf("Populating TPTBM with %d rows (batch size %d)...", total, w.BatchSize())

			uiprogress.Start()
			bar := uiprogress.AddBar(total).AppendCompleted().PrependElapsed()
			bar.PrependFunc(func(b *uiprogress.Bar) string {
				return "Populating: "
			})
			err := w.Setup(ctx, func() { bar.Incr() })
			uiprogress.Stop()
			if err != nil {
				return err
			}
		}

		// 2. Run
		log.Printf("Starting %d threads x %d transactions...", cfg.NumThreads, cfg.NumXacts)
		uiprogress.Start()
		bar := uiprogress.AddBar(max(cfg.TotalXacts(), 1)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Transactions: "
		})
		res, runErr := w.Run(ctx, func(engine.Op) { bar.Incr() })
		uiprogress.Stop()

		// 3. Report (also for partial runs)
		printBenchReport(cfg, res)
		if runErr != nil {
			return runErr
		}

		// 4. Sample
		if sampleRows > 0 {
			rows, err := w.Sample(ctx, dialect.Limit{MaxRows: sampleRows})
			if err != nil {
				return err
			}
			var out [][]string
			for _, r := range rows {
				out = append(out, []string{strconv.Itoa(r.VpnID), strconv.Itoa(r.VpnNB), r.DirectoryNB, r.LastCallingParty})
			}
			fmt.Println("\nSample rows:")
			return renderTable(os.Stdout, []string{"VPN_ID", "VPN_NB", "DIRECTORY_NB", "LAST_CALLING_PARTY"}, out)
		}
		return nil
	},
}

func printBenchReport(cfg engine.Config, res *engine.Result) {
	fmt.Println("\n📊 TPTBM Summary Report:")
	fmt.Printf("Key count:                    %d (%d rows)\n", cfg.KeyCount, cfg.KeyCount*cfg.KeyCount)
	fmt.Printf("Threads:                      %d\n", cfg.NumThreads)
	fmt.Printf("Transactions per thread:      %d\n", cfg.NumXacts)
	fmt.Printf("%% read-only transactions:     %d\n", cfg.PercentReads)
	fmt.Printf("%% insert transactions:        %d\n", cfg.PercentInserts)
	fmt.Printf("%% update transactions:        %d\n", cfg.PercentUpdates())
	fmt.Printf("Random seed:                  %d\n", res.Seed)
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Total read transactions:      %d (%d not found)\n", res.Reads, res.NotFound)
	fmt.Printf("Total insert transactions:    %d\n", res.Inserts)
	fmt.Printf("Total update transactions:    %d\n", res.Updates)
	fmt.Printf("Elapsed time:                 %s\n", res.Elapsed)
	fmt.Printf("Transaction Rate (TPS):       %.1f\n", res.TPS())
	fmt.Printf("Transaction Rate (TPM):       %.1f\n", res.TPM())
}

func init() {
	RootCmd.AddCommand(benchCmd)

	def := engine.DefaultConfig()

	// CLI Flags
	benchCmd.Flags().Int("key-count", def.KeyCount, "rows per key dimension (table holds key-count² rows)")
	benchCmd.Flags().Int("num-xacts", def.NumXacts, "transactions per thread")
	benchCmd.Flags().Int("num-threads", def.NumThreads, "concurrent worker threads")
	benchCmd.Flags().Int("percent-reads", def.PercentReads, "percentage of read transactions")
	benchCmd.Flags().Int("percent-inserts", def.PercentInserts, "percentage of insert transactions")
	benchCmd.Flags().Int64("seed", def.Seed, "random seed (0 = random)")
	benchCmd.Flags().BoolVar(&skipSetup, "skip-setup", false, "reuse existing TPTBM rows instead of repopulating")
	benchCmd.Flags().BoolVar(&createTable, "create-table", false, "create the TPTBM table first")
	benchCmd.Flags().IntVar(&sampleRows, "sample", 0, "print the first N rows after the run")

	viper.BindPFlag("bench.key_count", benchCmd.Flags().Lookup("key-count"))
	viper.BindPFlag("bench.num_xacts", benchCmd.Flags().Lookup("num-xacts"))
	viper.BindPFlag("bench.num_threads", benchCmd.Flags().Lookup("num-threads"))
	viper.BindPFlag("bench.percent_reads", benchCmd.Flags().Lookup("percent-reads"))
	viper.BindPFlag("bench.percent_inserts", benchCmd.Flags().Lookup("percent-inserts"))
	viper.BindPFlag("bench.seed", benchCmd.Flags().Lookup("seed"))
}
