package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/catalog"
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/models"
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/render"
)

const (
	defaultCatalogOutput = "database_objects.xlsx"
	defaultObjectsOutput = "Object_List.xlsx"
)

func newCatalogCmd(a *app) *cobra.Command {
	var (
		outputPath string
		envs       []string
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Export the tables and views of each environment to a workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, err := a.cfg.CatalogEnvironments(envs...)
			if err != nil {
				return err
			}
			if len(targets) == 0 {
				return fmt.Errorf("no environments configured")
			}

			listings := make([]render.EnvObjects, 0, len(targets))
			for _, env := range targets {
				objects, err := a.readCatalog(cmd.Context(), env, env.Schemas...)
				if err != nil {
					return err
				}
				listings = append(listings, render.EnvObjects{Env: env.Name, Objects: objects})
			}

			if err := render.WriteCatalogWorkbook(outputPath, listings); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			a.log.Info("catalog exported", zap.String("path", outputPath), zap.Int("environments", len(listings)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", defaultCatalogOutput, "Output workbook")
	cmd.Flags().StringSliceVar(&envs, "env", nil, "Environments to export, in order (default: all)")

	return cmd
}

func newObjectsCmd(a *app) *cobra.Command {
	var (
		outputPath string
		envName    string
	)

	cmd := &cobra.Command{
		Use:   "objects",
		Short: "Write the numbered DWH and data mart object list of an environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, err := a.cfg.CatalogEnvironments(envName)
			if err != nil {
				return err
			}
			env := targets[0]
			dwhSchema, martSchema := a.cfg.Objects.DWHSchema, a.cfg.Objects.MartSchema

			objects, err := a.readCatalog(cmd.Context(), env, dwhSchema, martSchema)
			if err != nil {
				return err
			}

			dwh, mart := models.ObjectListFrom(objects, dwhSchema, martSchema)
			if err := render.WriteObjectListWorkbook(outputPath, dwh, mart); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			a.log.Info("object list written",
				zap.String("path", outputPath),
				zap.Int("dwh", len(dwh)),
				zap.Int("mart", len(mart)),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", defaultObjectsOutput, "Output workbook")
	cmd.Flags().StringVar(&envName, "env", "", "Environment to read")
	cmd.Flags().String("dwh-schema", "", "Data warehouse schema (default: dwh)")
	cmd.Flags().String("mart-schema", "", "Data mart schema (default: dm)")
	_ = cmd.MarkFlagRequired("env")

	return cmd
}

// readCatalog lists one environment's objects, closing the connection afterwards.
func (a *app) readCatalog(ctx context.Context, env catalog.Environment, schemas ...string) ([]models.DBObject, error) {
	log := a.log.With(zap.String("env", env.Name), zap.String("driver", env.Driver))
	log.Debug("connecting")

	r, err := catalog.Open(ctx, env)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	objects, err := r.Objects(ctx, schemas...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", env.Name, err)
	}
	log.Debug("catalog read", zap.Int("objects", len(objects)))
	return objects, nil
}
