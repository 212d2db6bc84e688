package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Senticor-ai/project-sub006/internal/application/item/dto"
	"github.com/Senticor-ai/project-sub006/internal/domain/item"
)

func newCmd(opts *globalOptions) *cobra.Command {
	var (
		req     dto.CreateItemRequest
		focused bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Build a new item and print it as JSON-LD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("focused") {
				req.IsFocused = &focused
			}
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				doc, err := a.service.CreateItem(ctx, req)
				if err != nil {
					return report(cmd.OutOrStdout(), err)
				}
				return writeJSON(cmd.OutOrStdout(), doc)
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&req.Type, "type", "t", string(item.ItemTypeAction), "Item type (Action, Project, Person, Reference, Organization)")
	f.StringVarP(&req.Name, "name", "n", "", "Item name")
	f.StringVar(&req.OrgID, "org", "", "Owning organization id")
	f.StringVarP(&req.Bucket, "bucket", "b", "", "Bucket ("+item.BucketNames()+")")
	f.StringVar(&req.RawCapture, "raw-capture", "", "Original capture text (defaults to the name)")
	f.StringVar(&req.ProjectID, "project", "", "Canonical id of the parent project")
	f.StringVar(&req.OrgRef, "org-ref", "", "Organization a person belongs to")
	f.StringVar(&req.OrgRole, "org-role", "", "Role of a person within the organization")
	f.StringVar(&req.Description, "description", "", "Description")
	f.StringVar(&req.Email, "email", "", "Email address")
	f.StringVar(&req.Telephone, "telephone", "", "Telephone number")
	f.StringVar(&req.URL, "url", "", "URL")
	f.StringVar(&req.DueDate, "due-date", "", "Due date")
	f.StringSliceVar(&req.Contexts, "context", nil, "Context tag (repeatable)")
	f.BoolVar(&focused, "focused", false, "Mark the item as focused")
	return cmd
}

func validateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a JSON-LD item document as a create",
		Long:  "Validate a JSON-LD item document as a create. Use - to read stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				if err := a.service.ValidateDocument(ctx, doc); err != nil {
					return report(cmd.OutOrStdout(), err)
				}
				return writeValid(cmd.OutOrStdout())
			})
		},
	}
}

func updateCmd(opts *globalOptions) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "update FILE",
		Short: "Validate an updated item document against its previous bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				if err := a.service.ValidateUpdate(ctx, item.Bucket(source), doc); err != nil {
					return report(cmd.OutOrStdout(), err)
				}
				return writeValid(cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().StringVar(&source, "source-bucket", "", "Bucket the item was in before the update")
	return cmd
}

func triageCmd(opts *globalOptions) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Check whether a bucket move is allowed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				if err := a.service.ValidateTransition(ctx, item.Bucket(from), item.Bucket(to)); err != nil {
					return report(cmd.OutOrStdout(), err)
				}
				return writeValid(cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", string(item.BucketInbox), "Source bucket")
	cmd.Flags().StringVar(&to, "to", "", "Target bucket")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func rulesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the loaded business rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(_ context.Context, a *app) error {
				return writeJSON(cmd.OutOrStdout(), a.service.ListRules())
			})
		},
	}
}

func readDocument(stdin io.Reader, path string) (*item.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc item.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &doc, nil
}

// report writes a rejected operation's response body and passes err through.
// Errors without a response body are returned unchanged for stderr.
func report(w io.Writer, err error) error {
	resp, ok := dto.ToValidationErrorResponse(err)
	if !ok {
		return err
	}
	if werr := writeJSON(w, resp); werr != nil {
		return errors.Join(err, werr)
	}
	return err
}

func writeValid(w io.Writer) error {
	return writeJSON(w, map[string]bool{"valid": true})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
