package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/totegamma/livefyre"
)

type collectionFlags struct {
	title  string
	url    string
	tags   string
	typ    string
	topics []string
}

func (f *collectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "collection title")
	cmd.Flags().StringVar(&f.url, "url", "", "canonical article url")
	cmd.Flags().StringVar(&f.tags, "tags", "", "comma separated tags")
	cmd.Flags().StringVar(&f.typ, "type", "", "collection type (reviews, sidenotes, ratings, counting, liveblog, livechat, livecomments)")
	cmd.Flags().StringSliceVar(&f.topics, "topic", nil, "topic as id=label, may repeat")
}

func (f *collectionFlags) build(a *app, articleID string) (*livefyre.Collection, error) {
	site, err := a.site()
	if err != nil {
		return nil, err
	}

	opts := &livefyre.CollectionOptions{
		Type: livefyre.CollectionType(f.typ),
		Tags: f.tags,
	}
	for _, raw := range f.topics {
		id, label, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("topic %q is not id=label", raw)
		}
		topic, err := livefyre.NewTopic(site, id, label)
		if err != nil {
			return nil, err
		}
		opts.Topics = append(opts.Topics, topic)
	}

	return site.Collection(articleID, f.title, f.url, opts)
}

func collectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collection",
		Short: "Create, update and read collections",
	}

	var syncFlags collectionFlags
	sync := &cobra.Command{
		Use:   "sync <articleId>",
		Short: "Create the collection or update it when it exists",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			col, err := syncFlags.build(a, args[0])
			if err != nil {
				return err
			}
			outcome, err := a.api.CreateOrUpdateCollection(cmd.Context(), col)
			if err != nil {
				return err
			}
			out := map[string]string{"outcome": outcome.String()}
			if id, err := col.CollectionID(); err == nil {
				out["collectionId"] = id
			}
			return printJSON(cmd, out)
		}),
	}
	syncFlags.register(sync)

	var metaFlags collectionFlags
	meta := &cobra.Command{
		Use:   "meta <articleId>",
		Short: "Print the signed payload without sending it",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			col, err := metaFlags.build(a, args[0])
			if err != nil {
				return err
			}
			payload, err := col.Payload()
			if err != nil {
				return err
			}
			return printJSON(cmd, payload)
		}),
	}
	metaFlags.register(meta)

	var contentFlags collectionFlags
	content := &cobra.Command{
		Use:   "content <articleId>",
		Short: "Fetch the collection bootstrap document",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			col, err := contentFlags.build(a, args[0])
			if err != nil {
				return err
			}
			doc, err := a.api.GetCollectionContent(cmd.Context(), col)
			if err != nil {
				return err
			}
			return printJSON(cmd, doc)
		}),
	}
	contentFlags.register(content)

	cmd.AddCommand(sync, meta, content)
	return cmd
}

func usersyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usersync",
		Short: "Manage Livefyre's pull-based user sync",
	}

	setURL := &cobra.Command{
		Use:   "set-url <template>",
		Short: "Register the profile url template, which must contain {id}",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.api.SetUserSyncURL(cmd.Context(), a.network, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		}),
	}

	refresh := &cobra.Command{
		Use:   "refresh <userId>",
		Short: "Ask Livefyre to pull a user profile again",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.api.SyncUser(cmd.Context(), a.network, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		}),
	}

	cmd.AddCommand(setURL, refresh)
	return cmd
}
