package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hoteldesk/internal/bookingform"
	"hoteldesk/internal/client"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/pkg/datetime"
	"hoteldesk/internal/receipt"
)

// App wires the console pieces together for the cobra commands.
type App struct {
	serverURL string

	session *client.Session
	api     *client.Client
	ctl     *Controller
	log     *zap.Logger

	in  *bufio.Reader
	out io.Writer
}

func tokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hoteldesk", "token")
}

func loadToken() string {
	p := tokenPath()
	if p == "" {
		return ""
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func saveToken(token string) error {
	p := tokenPath()
	if p == "" {
		return fmt.Errorf("cannot resolve home directory")
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return err
	}
	return os.WriteFile(p, []byte(token), 0o600)
}

func (a *App) init() error {
	log, err := NewLogger(os.Getenv("APP_ENV"))
	if err != nil {
		return err
	}
	a.log = log
	a.session = client.NewSession(loadToken())
	a.api = client.New(a.serverURL, a.session)
	a.ctl = NewController(a.api, a.log)
	a.in = bufio.NewReader(os.Stdin)
	a.out = os.Stdout

	// the session channel closes on the first 401; drop the stored
	// token so the next run starts at login
	go func() {
		<-a.session.Invalidated()
		if p := tokenPath(); p != "" {
			os.Remove(p)
		}
	}()
	return nil
}

func (a *App) prompt(label string) string {
	fmt.Fprintf(a.out, "%s: ", label)
	line, _ := a.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func (a *App) promptDate(label string, fallback time.Time) time.Time {
	raw := a.prompt(fmt.Sprintf("%s [%s]", label, datetime.Format(fallback)))
	if raw == "" {
		return fallback
	}
	t, err := datetime.Parse(raw)
	if err != nil {
		fmt.Fprintf(a.out, "  unrecognized date, keeping %s\n", datetime.Format(fallback))
		return fallback
	}
	return t
}

// Execute runs the console command tree.
func Execute() error {
	app := &App{}

	root := &cobra.Command{
		Use:           "hoteldesk",
		Short:         "Front-desk console for the hoteldesk booking API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
	}
	root.PersistentFlags().StringVar(&app.serverURL, "server",
		envOr("HOTELDESK_SERVER", "http://localhost:8080"), "booking API base URL")

	root.AddCommand(
		app.loginCmd(),
		app.logoutCmd(),
		app.listCmd(),
		app.newCmd(),
		app.editCmd(),
		app.statusCmd("checkout", "Check a booking out", domain.BookingCheckedOut),
		app.statusCmd("cancel", "Cancel a booking", domain.BookingCancelled),
		app.deleteCmd(),
		app.receiptCmd(),
	)

	return root.Execute()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (a *App) loginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = a.prompt("Email")
			}
			password := a.prompt("Password")

			user, err := a.api.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := saveToken(a.session.Token()); err != nil {
				a.log.Warn("token not persisted", zap.Error(err))
			}
			fmt.Fprintf(a.out, "Signed in as %s (%s)\n", user.Name, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = a.api.Logout(cmd.Context())
			if p := tokenPath(); p != "" {
				os.Remove(p)
			}
			fmt.Fprintln(a.out, "Signed out.")
			return nil
		},
	}
}

func (a *App) listCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the booking list",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.ctl.statusFilter = status
			if err := a.ctl.Load(cmd.Context()); err != nil {
				return err
			}
			a.printList()
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter by status (confirmed, checked_in, checked_out, cancelled)")
	return cmd
}

func (a *App) printList() {
	bookings := a.ctl.Bookings()
	if len(bookings) == 0 {
		fmt.Fprintln(a.out, "No bookings.")
		return
	}
	fmt.Fprintf(a.out, "%-5s %-8s %-22s %-12s %-12s %-11s %10s\n",
		"ID", "ROOM", "GUEST", "CHECK-IN", "CHECK-OUT", "STATUS", "TOTAL")
	for _, b := range bookings {
		roomNo, guestName := "-", "-"
		if b.Room != nil {
			roomNo = b.Room.RoomNumber
		}
		if b.Guest != nil {
			guestName = b.Guest.FirstName + " " + b.Guest.LastName
		}
		fmt.Fprintf(a.out, "%-5d %-8s %-22s %-12s %-12s %-11s %10.2f\n",
			b.ID, roomNo, guestName,
			b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"),
			b.Status, b.TotalPrice)
	}
}

func (a *App) newCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a booking through the reservation wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWizard(cmd.Context(), nil)
		},
	}
}

func (a *App) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a booking through the reservation wizard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid booking id %q", args[0])
			}
			res, err := a.api.Booking(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.runWizard(cmd.Context(), res.Booking)
		},
	}
}

// runWizard drives the two-step form: room selection, then details.
// With an existing booking it starts on the details step.
func (a *App) runWizard(ctx context.Context, existing *domain.Booking) error {
	rooms, err := a.api.Rooms(ctx)
	if err != nil {
		return err
	}
	guests, err := a.api.Guests(ctx)
	if err != nil {
		return err
	}

	var form *bookingform.Form
	if existing != nil {
		form = bookingform.NewEdit(rooms, guests, existing)
	} else {
		form = bookingform.New(rooms, guests, time.Now())
	}

	for form.Step() == bookingform.StepSelectRoom {
		fmt.Fprintln(a.out, "\n-- Select a room --")
		for _, r := range form.VisibleRooms() {
			fmt.Fprintf(a.out, "  [%d] %s  %-8s  $%.2f/night\n", r.ID, r.RoomNumber, r.Type, r.PricePerNight)
		}
		raw := a.prompt("Room id (or /text to search)")
		if strings.HasPrefix(raw, "/") {
			form.SetRoomQuery(strings.TrimPrefix(raw, "/"))
			continue
		}
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			if !form.SelectRoom(id) {
				fmt.Fprintln(a.out, "  no such room in the list")
				continue
			}
		}
		if !form.Next() {
			fmt.Fprintf(a.out, "  %s\n", form.Errors()["room"])
		}
	}

	for {
		fmt.Fprintln(a.out, "\n-- Stay details --")
		d := form.Draft()

		fmt.Fprintln(a.out, "Guests on file:")
		for _, g := range guests {
			fmt.Fprintf(a.out, "  [%d] %s %s  %s\n", g.ID, g.FirstName, g.LastName, g.Email)
		}
		if raw := a.prompt(fmt.Sprintf("Guest id [%d]", d.GuestID)); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				form.SetGuest(id)
			}
		}

		form.SetCheckIn(a.promptDate("Check-in", d.CheckIn))
		form.SetCheckOut(a.promptDate("Check-out", d.CheckOut))

		if raw := a.prompt(fmt.Sprintf("Number of guests [%d]", d.NumberOfGuests)); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				form.SetNumberOfGuests(n)
			}
		}
		if raw := a.prompt("Notes"); raw != "" {
			form.SetNotes(raw)
		}
		if form.Editing() {
			if raw := a.prompt(fmt.Sprintf("Status [%s]", d.Status)); raw != "" {
				form.SetStatus(domain.BookingStatus(raw))
			}
		}

		if q := form.Quote(); q != nil {
			fmt.Fprintf(a.out, "\nAmount summary: charges $%.2f + tax $%.2f = $%.2f\n",
				q.RoomCharges, q.TaxAmount, q.TotalAmount)
		}

		if !form.Validate() {
			for field, msg := range form.Errors() {
				fmt.Fprintf(a.out, "  %s: %s\n", field, msg)
			}
			continue
		}
		break
	}

	d := form.Draft()
	write := client.BookingWrite{
		RoomID:         d.RoomID,
		GuestID:        d.GuestID,
		CheckIn:        d.CheckIn,
		CheckOut:       d.CheckOut,
		NumberOfGuests: d.NumberOfGuests,
		Status:         d.Status,
		Notes:          d.Notes,
		Quote:          form.Quote(),
	}

	var res *client.BookingResult
	if existing != nil {
		res, err = a.ctl.Update(ctx, existing.ID, write)
	} else {
		res, err = a.ctl.Create(ctx, write)
	}
	if err != nil {
		return err
	}

	confirmed := res.Booking
	confirmed.Billing = res.Billing
	form.Complete(confirmed)

	fmt.Fprintln(a.out)
	return receipt.Render(a.out, form.Confirmed())
}

func (a *App) statusCmd(use, short string, to domain.BookingStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid booking id %q", args[0])
			}
			res, err := a.api.ChangeBookingStatus(cmd.Context(), id, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Booking %d is now %s.\n", id, res.Booking.Status)
			return nil
		},
	}
}

func (a *App) deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a booking (asks for confirmation)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid booking id %q", args[0])
			}

			if err := a.ctl.Load(cmd.Context()); err != nil {
				return err
			}

			confirm := func(b domain.Booking) bool {
				if yes {
					return true
				}
				answer := a.prompt(fmt.Sprintf("Delete booking %d (%s stay)? [y/N]", b.ID, b.Status))
				return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
			}

			deleted, err := a.ctl.Delete(cmd.Context(), id, confirm)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(a.out, "Kept.")
				return nil
			}
			fmt.Fprintln(a.out, "Deleted.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (a *App) receiptCmd() *cobra.Command {
	var printTo string
	cmd := &cobra.Command{
		Use:   "receipt <id>",
		Short: "Show the receipt for a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid booking id %q", args[0])
			}

			res, err := a.ctl.Receipt(cmd.Context(), id)
			if err != nil {
				return err
			}
			b := res.Booking
			b.Billing = res.Billing

			r := receipt.Open(b, receipt.WithPrinter(a.out))
			if err := r.Print(); err != nil {
				return err
			}

			if printTo != "" {
				f, err := os.Create(printTo)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := receipt.Render(f, b); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Receipt written to %s\n", printTo)
			}
			r.Close()
			return nil
		},
	}
	cmd.Flags().StringVar(&printTo, "print", "", "also write the receipt to this file")
	return cmd
}
