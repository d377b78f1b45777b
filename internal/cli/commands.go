package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	api "github.com/glekoz/rvdesk/api/v1"
	"github.com/glekoz/rvdesk/internal/models"
	"github.com/glekoz/rvdesk/internal/query"
	"github.com/glekoz/rvdesk/internal/table"
	"github.com/glekoz/rvdesk/internal/views"
	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:8080"

type options struct {
	server  string
	timeout time.Duration
	width   int
}

func (o *options) client() *Client {
	return NewClient(o.server, o.timeout)
}

// columns - явная ширина из --width или ширина терминала.
func (o *options) columns(cmd *cobra.Command) int {
	if o.width > 0 {
		return o.width
	}
	return terminalColumns(cmd.OutOrStdout())
}

// NewRootCmd builds the rvctl command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:           "rvctl",
		Short:         "Terminal client for the research vessel equipment dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	server := os.Getenv("RVDESK_URL")
	if server == "" {
		server = defaultServer
	}
	root.PersistentFlags().StringVar(&o.server, "server", server, "dashboard API base URL (env RVDESK_URL)")
	root.PersistentFlags().DurationVar(&o.timeout, "timeout", 10*time.Second, "request timeout")
	root.PersistentFlags().IntVar(&o.width, "width", 0, "pretend the terminal is this many columns wide")

	root.AddCommand(newListCmd(o), newEquipmentCmd(o), newDashboardCmd(o))
	return root
}

func newListCmd(o *options) *cobra.Command {
	var q ListQuery
	cmd := &cobra.Command{
		Use:   "list <entity>",
		Short: "Show one page of an entity",
		Long: `Show one page of notices, equipment, parts, inspections, operations or import-errors.

Columns that do not fit the terminal are hidden the same way the web dashboard hides them.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: entityNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, err := models.ParseEntity(args[0])
			if err != nil {
				return fmt.Errorf("%w: %s", err, args[0])
			}
			tv, err := o.client().Table(cmd.Context(), entity, q, widthPx(o.columns(cmd)))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), renderTableView(tv))
			return err
		},
	}
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&q.PageSize, "size", 10, "page size")
	cmd.Flags().StringVarP(&q.Q, "query", "q", "", "search text")
	cmd.Flags().StringVar(&q.Target, "target", "", "field to search in, e.g. title or 제목")
	return cmd
}

func entityNames() []string {
	es := models.Entities()
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = string(e)
	}
	return out
}

func newEquipmentCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equipment",
		Short: "Equipment operations",
	}

	var q ListQuery
	status := &cobra.Command{
		Use:   "status <id> <active|standby|inactive>",
		Short: "Change the status of one equipment item",
		Long: `Change the status of one equipment item.

The change is shown at once on the current page and rolled back if the server refuses it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			st := models.EquipmentStatus(args[1])
			if !st.Valid() {
				return fmt.Errorf("unknown status %q", args[1])
			}
			return runStatusChange(cmd, o, q, id, st)
		},
	}
	status.Flags().IntVar(&q.Page, "page", 1, "page to show around the change")
	status.Flags().IntVar(&q.PageSize, "size", 10, "page size")

	cmd.AddCommand(status)
	return cmd
}

// runStatusChange применяет изменение к загруженной странице до ответа сервера
// и откатывает его, если сервер ответил ошибкой.
func runStatusChange(cmd *cobra.Command, o *options, q ListQuery, id int, st models.EquipmentStatus) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	c := o.client()
	vp := table.ViewportForWidth(widthPx(o.columns(cmd)))

	ap, err := c.Equipment(ctx, q)
	if err != nil {
		return err
	}
	page := views.NewPage(pageFromAPI(ap))

	pending, shown := page.Apply(id, func(e models.Equipment) models.Equipment {
		e.Status = st
		return e
	})
	if shown {
		fmt.Fprintln(out, pendingStyle.Render(fmt.Sprintf("#%d → %s (저장 중)", id, st)))
		fmt.Fprint(out, renderView(table.Render(views.EquipmentColumns(), page.Snapshot().Items, vp, "")))
	}

	_, err = c.SetEquipmentStatus(ctx, id, st)
	if !shown {
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "#%d → %s\n", id, st)
		return nil
	}

	switch pending.Settle(err) {
	case views.StateRolledBack:
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("#%d 변경 실패, 이전 상태 %s 로 되돌림", id, pending.Previous().Status)))
		fmt.Fprint(out, renderView(table.Render(views.EquipmentColumns(), page.Snapshot().Items, vp, "")))
		return err
	default:
		fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("#%d → %s 저장됨", id, st)))
	}
	return nil
}

func pageFromAPI(ap api.EquipmentPage) query.Page[models.Equipment] {
	items := make([]models.Equipment, len(ap.Items))
	for i, e := range ap.Items {
		items[i] = fromAPIEquipment(e)
	}
	return query.Page[models.Equipment]{Items: items, Page: ap.Page, PageSize: ap.PageSize, Total: ap.Total}
}

func newDashboardCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the summary of the main screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := o.client().Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), renderDashboard(d))
			return err
		},
	}
}
