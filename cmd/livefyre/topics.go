package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/totegamma/livefyre"
	"github.com/totegamma/livefyre/api"
)

// topicOwner picks the site when --site is set, the network otherwise.
func topicOwner(a *app, useSite bool) (livefyre.Core, error) {
	if useSite {
		return a.site()
	}
	return a.network, nil
}

func topicsCmd() *cobra.Command {
	var useSite bool

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Manage personalized stream topics",
	}
	cmd.PersistentFlags().BoolVar(&useSite, "site", false, "operate on site topics instead of network topics")

	var limit, offset int
	list := &cobra.Command{
		Use:   "list",
		Short: "List topics",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			core, err := topicOwner(a, useSite)
			if err != nil {
				return err
			}
			topics, err := a.api.GetTopics(cmd.Context(), core, limit, offset)
			if err != nil {
				return err
			}
			return printJSON(cmd, topics)
		}),
	}
	list.Flags().IntVar(&limit, "limit", 100, "page size")
	list.Flags().IntVar(&offset, "offset", 0, "page offset")

	create := &cobra.Command{
		Use:   "create <id=label>...",
		Short: "Create or update topics",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			core, err := topicOwner(a, useSite)
			if err != nil {
				return err
			}
			labels := make(map[string]string, len(args))
			for _, raw := range args {
				id, label, ok := strings.Cut(raw, "=")
				if !ok {
					return fmt.Errorf("topic %q is not id=label", raw)
				}
				labels[id] = label
			}
			topics, err := a.api.CreateOrUpdateTopics(cmd.Context(), core, labels)
			if err != nil {
				return err
			}
			return printJSON(cmd, topics)
		}),
	}

	del := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete topics by their short id",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			core, err := topicOwner(a, useSite)
			if err != nil {
				return err
			}
			topics := make([]livefyre.Topic, 0, len(args))
			for _, id := range args {
				topics = append(topics, livefyre.Topic{ID: livefyre.TopicURN(core, id)})
			}
			n, err := a.api.DeleteTopics(cmd.Context(), core, topics)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]int{"deleted": n})
		}),
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func timelineCmd() *cobra.Command {
	var (
		topicID string
		user    string
		limit   int
		pages   int
		newer   bool
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Page through a topic stream or a personal stream",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			var cursor *api.TimelineCursor
			switch {
			case topicID != "" && user == "":
				cursor = a.api.TopicStreamCursor(a.network,
					livefyre.Topic{ID: livefyre.TopicURN(a.network, topicID)}, limit, time.Now())
			case user != "" && topicID == "":
				cursor = a.api.PersonalStreamCursor(a.network, user, limit, time.Now())
			default:
				return fmt.Errorf("exactly one of --topic and --user is required")
			}

			for i := 0; i < pages; i++ {
				var (
					page *api.TimelinePage
					err  error
				)
				if newer {
					if !cursor.HasPrevious() {
						break
					}
					page, err = cursor.Previous(cmd.Context())
				} else {
					if !cursor.HasNext() {
						break
					}
					page, err = cursor.Next(cmd.Context())
				}
				if err != nil {
					return err
				}
				if err := printJSON(cmd, page.Raw); err != nil {
					return err
				}
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&topicID, "topic", "", "network topic id")
	cmd.Flags().StringVar(&user, "user", "", "user id for the personal stream")
	cmd.Flags().IntVar(&limit, "limit", 50, "items per page")
	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to fetch")
	cmd.Flags().BoolVar(&newer, "newer", false, "page towards newer items")
	return cmd
}
