package cmd

import (
	"fmt"
	"os"

	"ttdialect/internal/engine"

	"github.com/spf13/cobra"
)

var (
	seqStart     int
	seqIncrement int
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Render or run sequence statements",
}

var sequenceSQLCmd = &cobra.Command{
	Use:   "sql <name>",
	Short: "Print the sequence statements for name without connecting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := currentDialect()
		if err != nil {
			return err
		}
		s := d.SequenceSupport()
		name := args[0]

		create := []string{s.CreateSequenceString(name)}
		if seqIncrement != 0 {
			if create, err = s.CreateSequenceStrings(name, seqStart, seqIncrement); err != nil {
				return err
			}
		}
		rows := [][]string{
			{"next value (select list)", s.SelectSequenceNextValString(name)},
			{"next value (statement)", s.SequenceNextValString(name)},
		}
		for _, stmt := range create {
			rows = append(rows, []string{"create", stmt})
		}
		for _, stmt := range s.DropSequenceStrings(name) {
			rows = append(rows, []string{"drop", stmt})
		}
		rows = append(rows, []string{"list", d.QuerySequencesString()})
		return renderTable(os.Stdout, []string{"Operation", "SQL"}, rows)
	},
}

var sequenceCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a sequence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := sequenceManager(cmd)
		if err != nil {
			return err
		}
		return m.Create(cmd.Context(), args[0], seqStart, seqIncrement)
	},
}

var sequenceDropCmd = &cobra.Command{
	Use:   "drop <name>",
	Short: "Drop a sequence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := sequenceManager(cmd)
		if err != nil {
			return err
		}
		return m.Drop(cmd.Context(), args[0])
	},
}

var sequenceNextCmd = &cobra.Command{
	Use:   "next <name>",
	Short: "Fetch the next value of a sequence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := sequenceManager(cmd)
		if err != nil {
			return err
		}
		v, err := m.Next(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil
	},
}

var sequenceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current user's sequences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := sequenceManager(cmd)
		if err != nil {
			return err
		}
		names, err := m.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	},
}

func sequenceManager(cmd *cobra.Command) (*engine.SequenceManager, error) {
	d, err := currentDialect()
	if err != nil {
		return nil, err
	}
	db, err := connect(cmd.Context())
	if err != nil {
		return nil, err
	}
	return engine.NewSequenceManager(db, d), nil
}

func init() {
	RootCmd.AddCommand(sequenceCmd)
	sequenceCmd.AddCommand(sequenceSQLCmd, sequenceCreateCmd, sequenceDropCmd, sequenceNextCmd, sequenceListCmd)

	for _, c := range []*cobra.Command{sequenceSQLCmd, sequenceCreateCmd} {
		c.Flags().IntVar(&seqStart, "start", 1, "initial value (used with --increment)")
		c.Flags().IntVar(&seqIncrement, "increment", 0, "increment size (0 = database default)")
	}
}
