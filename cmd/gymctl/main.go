package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/gimelloc/ignite-gym/internal/api"
	"github.com/gimelloc/ignite-gym/internal/auth"
	"github.com/gimelloc/ignite-gym/internal/config"
	"github.com/gimelloc/ignite-gym/internal/domain"
	"github.com/gimelloc/ignite-gym/internal/exercise"
	"github.com/gimelloc/ignite-gym/internal/notify"
	"github.com/gimelloc/ignite-gym/internal/picker"
	"github.com/gimelloc/ignite-gym/internal/profile"
	"github.com/gimelloc/ignite-gym/internal/session"
	"github.com/gimelloc/ignite-gym/pkg/log"
)

func main() {
	cmd := flag.String("cmd", "", "Command: login|logout|me|update-profile|avatar|groups|exercises|exercise|done|history")
	email := flag.String("email", "", "Email (login)")
	password := flag.String("password", "", "Password (login)")
	name := flag.String("name", "", "New profile name (update-profile)")
	oldPassword := flag.String("old-password", "", "Current password (update-profile)")
	newPassword := flag.String("new-password", "", "New password (update-profile)")
	confirmPassword := flag.String("confirm-password", "", "New password confirmation (update-profile)")
	file := flag.String("file", "", "Image file for the new avatar (avatar)")
	group := flag.String("group", "", "Muscle group (exercises)")
	id := flag.String("id", "", "Exercise ID (exercise, done)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}
	log.Init(cfg.Log)

	store, err := session.NewGormStore(cfg.Session.DBPath)
	if err != nil {
		l := log.L()
		l.Fatal().Err(err).Msg("failed to open session store")
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, store)
	notifier := notify.Default()

	authSvc := auth.NewService(client, store, notifier)
	exercises := exercise.NewService(client, store, notifier)

	ctx := context.Background()

	switch *cmd {
	case "login":
		user, err := authSvc.SignIn(ctx, *email, *password)
		if err != nil {
			exitErr(err)
		}
		fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)

	case "logout":
		if err := authSvc.SignOut(ctx); err != nil {
			exitErr(err)
		}
		fmt.Println("Signed out.")

	case "me":
		user, err := store.Current()
		if err != nil {
			exitErr(err)
		}
		printJSON(user)

	case "update-profile":
		current, err := store.Current()
		if err != nil {
			exitErr(err)
		}
		draft := domain.ProfileEditDraft{
			Name:            *name,
			OldPassword:     *oldPassword,
			NewPassword:     *newPassword,
			ConfirmPassword: *confirmPassword,
		}
		if draft.Name == "" {
			draft.Name = current.Name
		}

		ctrl := newController(cfg, client, store, notifier, "")
		if err := ctrl.Submit(ctx, draft); err != nil {
			var vErr *profile.ValidationError
			if errors.As(err, &vErr) {
				for _, f := range vErr.Fields {
					fmt.Fprintf(os.Stderr, "%s: %s\n", f.Field, f.Message)
				}
			}
			os.Exit(1)
		}

	case "avatar":
		ctrl := newController(cfg, client, store, notifier, *file)
		user, err := ctrl.ChangeAvatar(ctx)
		if err != nil {
			exitErr(err)
		}
		if user == nil {
			fmt.Println("No file selected.")
			return
		}
		fmt.Println("Avatar:", user.Avatar)

	case "groups":
		groups, err := exercises.Groups(ctx)
		if err != nil {
			exitErr(err)
		}
		printJSON(groups)

	case "exercises":
		if *group != "" {
			list, err := exercises.ByGroup(ctx, *group)
			if err != nil {
				exitErr(err)
			}
			printJSON(list)
			return
		}
		groups, err := exercises.Groups(ctx)
		if err != nil {
			exitErr(err)
		}
		byGroup, err := exercises.ByGroups(ctx, groups)
		if err != nil {
			exitErr(err)
		}
		printJSON(byGroup)

	case "exercise":
		if *id == "" {
			exitErr(errors.New("--id required"))
		}
		ex, err := exercises.Get(ctx, *id)
		if err != nil {
			os.Exit(1)
		}
		printJSON(ex)
		fmt.Println("Demo:", exercises.DemoURL(*ex))

	case "done":
		if *id == "" {
			exitErr(errors.New("--id required"))
		}
		if err := exercises.RegisterHistory(ctx, *id); err != nil {
			os.Exit(1)
		}

	case "history":
		days, err := exercises.History(ctx)
		if err != nil {
			exitErr(err)
		}
		printJSON(days)

	default:
		flag.Usage()
		os.Exit(1)
	}
}

// newController assembles the profile form controller with a picker
// preselecting the given file path ("" behaves as cancelled).
func newController(cfg *config.Config, client *api.Client, store session.Store, notifier notify.Notifier, file string) *profile.FormController {
	fs, err := picker.NewLocalFS(cfg.Avatar.SourceDir)
	if err != nil {
		l := log.L()
		l.Fatal().Err(err).Msg("failed to init avatar filesystem")
	}

	updater := profile.NewUpdater(client, store, notifier)
	uploader := profile.NewAvatarUploader(client, store, picker.PathPicker{Path: file}, fs, notifier, cfg.Avatar.MaxSizeMB)
	return profile.NewFormController(updater, uploader)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		exitErr(err)
	}
	fmt.Println(string(data))
}

func exitErr(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
