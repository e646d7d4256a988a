package main

import (
	"log/slog"

	"github.com/DjordjeVuckovic/docsearch/internal/engine/factory"
	"github.com/DjordjeVuckovic/docsearch/internal/schema"
	"github.com/spf13/cobra"
)

var (
	schemaPath  string
	ifNotExists bool
)

var createIndexCmd = &cobra.Command{
	Use:   "create-index",
	Short: "Create the index from a YAML schema, or from the built-in default layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := schema.LoadFile(schemaPath)
		if err != nil {
			return err
		}

		inst, index, err := openEngine(ctx)
		if err != nil {
			return err
		}
		defer inst.Close()

		if ifNotExists {
			err = factory.EnsureIndex(ctx, inst.Engine, index, s)
		} else {
			err = inst.Engine.CreateIndex(ctx, index, s)
		}
		if err != nil {
			return err
		}

		slog.Info("Index ready", "index", index, "fields", len(s.Fields))
		return nil
	},
}

var deleteIndexCmd = &cobra.Command{
	Use:   "delete-index",
	Short: "Delete the index if it exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		inst, index, err := openEngine(ctx)
		if err != nil {
			return err
		}
		defer inst.Close()

		if err := inst.Engine.DeleteIndex(ctx, index); err != nil {
			return err
		}
		slog.Info("Index deleted", "index", index)
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Make every pending write searchable",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		inst, index, err := openEngine(ctx)
		if err != nil {
			return err
		}
		defer inst.Close()

		return inst.Engine.RefreshIndex(ctx, index)
	},
}

func init() {
	createIndexCmd.Flags().StringVar(&schemaPath, "schema", "", "path to an IndexSchema YAML file")
	createIndexCmd.Flags().BoolVar(&ifNotExists, "if-not-exists", false, "succeed when the index already exists")
}
