package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"baseballnote/client"
	"baseballnote/validation"

	"github.com/spf13/cobra"
)

var (
	listQuery    string
	listPage     int
	listPageSize int

	noteTheme      string
	noteAssignment string
	noteWeight     float64
	noteSleep      float64
	noteLookedDay  string
	notePractice   string
	noteVideoURL   string
	noteVideoFile  string
	noteTrainings  string
	alertsLimit    int
)

func listOptions() client.ListOptions {
	return client.ListOptions{Query: listQuery, Page: listPage, PageSize: listPageSize}
}

var profileCmd = &cobra.Command{
	Use:   "profile <user_id>",
	Short: "Show a player profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		s, err := restoreSession(ctx)
		if err != nil {
			return err
		}
		p, err := s.Client().GetProfile(ctx, args[0])
		if err != nil {
			return err
		}
		if p == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "no profile yet")
			return nil
		}
		return printResult(cmd, p, func() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d) %s %s %s\n", p.Name, p.Age, p.TeamName, p.PlayerPosition, p.PlayerDominant)
		})
	},
}

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "List, show, create and delete notes",
}

var notesListCmd = &cobra.Command{
	Use:   "list [firebase_uid]",
	Short: "List notes, your own by default",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		s, err := restoreSession(ctx)
		if err != nil {
			return err
		}
		uid := s.State().User.UID
		if len(args) == 1 {
			uid = args[0]
		}
		page, err := s.Client().ListMyNotes(ctx, uid, listOptions())
		if err != nil {
			return err
		}
		return printResult(cmd, page, func() {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tTHEME")
			for _, n := range page.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, n.CreatedAt.Format("2006-01-02"), n.Theme)
			}
			_ = w.Flush()
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d\n", len(page.Items), page.Total)
		})
	},
}

var notesShowCmd = &cobra.Command{
	Use:   "show <note_id>",
	Short: "Show a note with its trainings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		s, err := restoreSession(ctx)
		if err != nil {
			return err
		}
		n, err := s.Client().GetNoteDetail(ctx, args[0])
		if err != nil {
			return err
		}
		return printResult(cmd, n, func() {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", n.CreatedAt.Format("2006-01-02"), n.Theme)
			fmt.Fprintf(out, "課題: %s\n体重: %.1f kg  睡眠: %.1f h\n振り返り: %s\n", n.Assignment, n.Weight, n.Sleep, n.LookedDay)
			for _, tn := range n.TrainingNotes {
				name := tn.TrainingID
				if tn.Training != nil {
					name = tn.Training.Menu
				}
				fmt.Fprintf(out, "  %s x %d\n", name, tn.Count)
			}
		})
	},
}

// openVideo attaches a local file for upload. The caller closes the returned file.
func openVideo(path string) (*client.File, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return &client.File{
		Name:        filepath.Base(path),
		ContentType: validation.VideoContentType(path),
		Size:        st.Size(),
		Body:        f,
	}, f, nil
}

var notesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write today's note",
	Long: `Write today's note. Every training menu must be reported, pass them as JSON:

  notecli notes create --theme ... --trainings '[{"training_id":"<id>","count":50}]'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		s, err := restoreSession(ctx)
		if err != nil {
			return err
		}
		var trainings []validation.TrainingInput
		if noteTrainings != "" {
			if err := json.Unmarshal([]byte(noteTrainings), &trainings); err != nil {
				return fmt.Errorf("--trainings: %w", err)
			}
		}
		menus, err := s.Client().ListMenus(ctx)
		if err != nil {
			return err
		}
		req := client.NoteRequest{
			NoteInput: validation.NoteInput{
				Theme:         noteTheme,
				Assignment:    noteAssignment,
				PracticeVideo: noteVideoURL,
				Weight:        noteWeight,
				Sleep:         noteSleep,
				LookedDay:     noteLookedDay,
				Practice:      notePractice,
				Trainings:     trainings,
			},
			Menus: menus.MenuIDs(),
		}
		if noteVideoFile != "" {
			video, f, err := openVideo(noteVideoFile)
			if err != nil {
				return err
			}
			defer f.Close()
			req.MyVideo = video
		}
		n, err := s.Client().CreateNote(ctx, s.State().User.UID, req)
		if err != nil {
			return err
		}
		return printResult(cmd, n, func() {
			fmt.Fprintf(cmd.OutOrStdout(), "created note %s\n", n.ID)
		})
	},
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete <note_id>",
	Short: "Delete one of your notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		s, err := restoreSession(ctx)
		if err != nil {
			return err
		}
		if err := s.Client().DeleteNote(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "deleted")
		return nil
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Manage training menus",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		s, err := restoreSession(ctx)
		if err != nil {
			return err
		}
		list, err := s.Client().ListMenus(ctx)
		if err != nil {
			return err
		}
		return printResult(cmd, list, func() {
			for _, m := range list.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.ID, m.Menu)
			}
		})
	},
}

var menuAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a training menu (coach)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		s, err := restoreSession(ctx)
		if err != nil {
			return err
		}
		m, err := s.Client().CreateMenu(ctx, validation.MenuInput{Menu: args[0]})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", m.ID)
		return nil
	},
}

var menuDeleteCmd = &cobra.Command{
	Use:   "delete <training_id>",
	Short: "Delete a training menu (coach)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		s, err := restoreSession(ctx)
		if err != nil {
			return err
		}
		return s.Client().DeleteMenu(ctx, args[0])
	},
}

var commentCmd = &cobra.Command{
	Use:   "comments <note_id>",
	Short: "List the comments on a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		s, err := restoreSession(ctx)
		if err != nil {
			return err
		}
		comments, err := s.Client().ListComments(ctx, args[0])
		if err != nil {
			return err
		}
		return printResult(cmd, comments, func() {
			for _, c := range comments {
				author := c.AuthorName
				if author == "" {
					author = c.AuthorEmail
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n", c.CreatedAt.Format("01/02 15:04"), author, c.Content)
			}
		})
	},
}

var commentAddCmd = &cobra.Command{
	Use:   "add <note_id> <text>",
	Short: "Comment on a player's note (coach)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		s, err := restoreSession(ctx)
		if err != nil {
			return err
		}
		c, err := s.Client().AddComment(ctx, args[0], validation.CommentInput{Content: args[1]})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "commented %s\n", c.ID)
		return nil
	},
}

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show your latest alerts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		s, err := restoreSession(ctx)
		if err != nil {
			return err
		}
		alerts, err := s.Client().ListAlerts(ctx, alertsLimit)
		if err != nil {
			return err
		}
		return printResult(cmd, alerts, func() {
			for _, a := range alerts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s %s\n", a.CreatedAt.Format("01/02 15:04"), a.Type, a.Message)
			}
		})
	},
}

func init() {
	notesListCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Search theme and assignment")
	notesListCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	notesListCmd.Flags().IntVar(&listPageSize, "page-size", 10, "Notes per page")

	f := notesCreateCmd.Flags()
	f.StringVar(&noteTheme, "theme", "", "Theme of the day")
	f.StringVar(&noteAssignment, "assignment", "", "Assignment")
	f.Float64Var(&noteWeight, "weight", 0, "Weight in kg, one decimal")
	f.Float64Var(&noteSleep, "sleep", 0, "Sleep in hours, one decimal")
	f.StringVar(&noteLookedDay, "looked-day", "", "Looking back on the day")
	f.StringVar(&notePractice, "practice", "", "Practice notes")
	f.StringVar(&noteVideoURL, "practice-video", "", "Reference video URL")
	f.StringVar(&noteVideoFile, "video", "", "Video file to upload")
	f.StringVar(&noteTrainings, "trainings", "", "Training counts as JSON")

	alertsCmd.Flags().IntVar(&alertsLimit, "limit", 20, "Number of alerts")

	notesCmd.AddCommand(notesListCmd, notesShowCmd, notesCreateCmd, notesDeleteCmd)
	menuCmd.AddCommand(menuAddCmd, menuDeleteCmd)
	commentCmd.AddCommand(commentAddCmd)
}
