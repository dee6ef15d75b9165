package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/echoplay/echoplay/internal/catalog"
	"github.com/echoplay/echoplay/internal/client/account"
	"github.com/echoplay/echoplay/internal/client/playlist"
	"github.com/echoplay/echoplay/internal/client/session"
	"github.com/echoplay/echoplay/internal/logger"
	"github.com/echoplay/echoplay/internal/models"
)

var (
	version   string
	buildDate string
)

// shell bundles everything the REPL commands operate on. It is built
// once in main and passed around explicitly; there are no package
// globals holding application state.
type shell struct {
	catalog  *catalog.Client
	account  *account.Client
	manager  *playlist.Manager
	session  *session.Session
	lastPick []models.Track // playable results of the last search, indexed by `add`
}

// repl runs the interactive loop. Which commands are available depends
// only on whether a user is signed in.
func (sh *shell) repl() {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("echoplay> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		if args[0] == "exit" {
			fmt.Println("Bye")
			return
		}
		if args[0] == "help" {
			sh.help()
			continue
		}

		if !sh.session.Authenticated() {
			switch args[0] {
			case "signup":
				sh.signUp(args[1:])
			case "signin":
				sh.signIn(args[1:])
			default:
				fmt.Println("Sign in first. Type 'help' for a list of commands.")
			}
			continue
		}

		switch args[0] {
		case "search":
			sh.search(args[1:])
		case "trending":
			sh.trending()
		case "playlists":
			sh.listPlaylists()
		case "create":
			sh.createPlaylist(args[1:])
		case "delete":
			sh.deletePlaylist(args[1:])
		case "add":
			sh.addTrack(args[1:])
		case "remove":
			sh.removeTrack(args[1:])
		case "profile":
			sh.profile()
		case "bio":
			sh.updateProfile(models.ProfileUpdate{Bio: strptr(strings.Join(args[1:], " "))})
		case "photo":
			if len(args) < 2 {
				fmt.Println("Usage: photo <image-url>")
				continue
			}
			sh.updateProfile(models.ProfileUpdate{ProfileImageURL: &args[1]})
		case "signout":
			sh.signOut()
		case "delete-account":
			sh.deleteAccount()
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func (sh *shell) help() {
	if !sh.session.Authenticated() {
		fmt.Println("Available commands: help, signup <username> <email> <password>, signin <email> <password>, exit")
		return
	}
	fmt.Println("Available commands: help, search <query>, trending, playlists, create <name>,")
	fmt.Println("  delete <playlist#>, add <playlist#> <song#>, remove <playlist#> <track-id>,")
	fmt.Println("  profile, bio <text>, photo <image-url>, signout, delete-account, exit")
}

func (sh *shell) signUp(args []string) {
	if len(args) < 3 {
		fmt.Println("Usage: signup <username> <email> <password>")
		return
	}
	user, token, err := sh.account.SignUp(context.Background(), args[0], args[1], args[2])
	if err != nil {
		fmt.Println("Sign up failed:", err)
		return
	}
	sh.session.Begin(user, token)
	fmt.Printf("Welcome, %s\n", user.Username)
}

func (sh *shell) signIn(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: signin <email> <password>")
		return
	}
	user, token, err := sh.account.SignIn(context.Background(), args[0], args[1])
	if err != nil {
		fmt.Println("Sign in failed:", err)
		return
	}
	sh.session.Begin(user, token)
	fmt.Printf("Welcome back, %s\n", user.Username)
}

// signOut clears local state regardless of whether the server call
// succeeds; only the server-side session outlives a failure here.
func (sh *shell) signOut() {
	if err := sh.account.SignOut(context.Background(), sh.session.Token); err != nil {
		fmt.Println("Server sign out failed:", err)
	}
	sh.session.Clear()
	fmt.Println("Signed out")
}

func (sh *shell) deleteAccount() {
	if err := sh.account.DeleteAccount(context.Background(), sh.session.Token, sh.session.User.UID); err != nil {
		fmt.Println("Delete account failed:", err)
		return
	}
	sh.session.Clear()
	fmt.Println("Account deleted")
}

func (sh *shell) profile() {
	doc, err := sh.account.FetchProfile(context.Background(), sh.session.Token, sh.session.User.UID)
	if err != nil {
		fmt.Println("Fetch profile failed:", err)
		return
	}
	sh.session.User = doc
	fmt.Printf("Username: %s\nEmail: %s\n", doc.Username, doc.Email)
	if doc.Bio != nil {
		fmt.Printf("Bio: %s\n", *doc.Bio)
	}
	if doc.ProfileImageURL != nil {
		fmt.Printf("Photo: %s\n", *doc.ProfileImageURL)
	}
	fmt.Printf("Member since: %s\n", doc.CreatedAt.Format("2006-01-02"))
}

func (sh *shell) updateProfile(update models.ProfileUpdate) {
	if err := sh.account.UpdateProfile(context.Background(), sh.session.Token, sh.session.User.UID, update); err != nil {
		fmt.Println("Update profile failed:", err)
		return
	}
	fmt.Println("Profile updated")
}

// search shows playable results only: these are the candidates for
// `add`, which needs a preview URL.
func (sh *shell) search(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: search <query>")
		return
	}
	tracks, err := sh.catalog.Search(context.Background(), strings.Join(args, " "))
	if err != nil {
		fmt.Println("Search failed:", err)
		return
	}
	sh.lastPick = catalog.Playable(tracks)
	if len(sh.lastPick) == 0 {
		fmt.Println("No playable tracks found")
		return
	}
	for i, t := range sh.lastPick {
		fmt.Printf("%3d  %s — %s\n", i, t.Title, t.Artist.Name)
	}
}

// trending is read-only, so tracks without a preview stay listed.
func (sh *shell) trending() {
	tracks, err := sh.catalog.Search(context.Background(), "top")
	if err != nil {
		fmt.Println("Trending failed:", err)
		return
	}
	for _, t := range tracks {
		fmt.Printf("  %s — %s\n", t.Title, t.Artist.Name)
	}
}

func (sh *shell) listPlaylists() {
	playlists := sh.manager.Playlists()
	if len(playlists) == 0 {
		fmt.Println("No playlists yet. Use 'create <name>'.")
		return
	}
	for i, p := range playlists {
		fmt.Printf("%3d  %s (%d tracks)\n", i, p.Name, len(p.Tracks))
		for _, t := range p.Tracks {
			fmt.Printf("       %s  %s\n", t.ID, t.Title)
		}
	}
}

func (sh *shell) createPlaylist(args []string) {
	name := strings.Join(args, " ")
	if name == "" {
		fmt.Println("Usage: create <name>")
		return
	}
	sh.manager.CreatePlaylist(name)
	fmt.Printf("Created playlist %q\n", name)
}

func (sh *shell) deletePlaylist(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: delete <playlist#>")
		return
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("Usage: delete <playlist#>")
		return
	}
	if err := sh.manager.DeletePlaylist(index); err != nil {
		fmt.Println("Delete failed:", err)
		return
	}
	fmt.Println("Playlist deleted")
}

func (sh *shell) addTrack(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: add <playlist#> <song#>")
		return
	}
	index, err1 := strconv.Atoi(args[0])
	pick, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Println("Usage: add <playlist#> <song#>")
		return
	}
	if pick < 0 || pick >= len(sh.lastPick) {
		fmt.Println("No such search result. Run 'search' first.")
		return
	}
	track := sh.lastPick[pick]
	if err := sh.manager.AddTrack(index, track.Title, *track.Preview); err != nil {
		fmt.Println("Add failed:", err)
		return
	}
	fmt.Printf("Added %q\n", track.Title)
}

func (sh *shell) removeTrack(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: remove <playlist#> <track-id>")
		return
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("Usage: remove <playlist#> <track-id>")
		return
	}
	trackID, err := uuid.Parse(args[1])
	if err != nil {
		fmt.Println("Invalid track id")
		return
	}
	if err := sh.manager.RemoveTrack(index, trackID); err != nil {
		fmt.Println("Remove failed:", err)
		return
	}
	fmt.Println("Done")
}

func strptr(s string) *string { return &s }

// main parses command-line flags and starts the interactive shell.
func main() {
	var (
		accountURL string
		catalogURL string
		logLevel   string
		showVer    bool
	)

	flag.StringVar(&accountURL, "account", "http://localhost:8080", "account service base URL")
	flag.StringVar(&catalogURL, "catalog", "https://api.deezer.com", "music catalog base URL")
	flag.StringVar(&logLevel, "l", "Warn", "log level")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("EchoPlay Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	log := logger.New()
	if err := log.Init(logLevel); err != nil {
		fmt.Println("failed to init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()

	store := playlist.NewStore(log.Log)
	sh := &shell{
		catalog: catalog.NewClient(catalogURL, nil),
		account: account.NewClient(accountURL, nil),
		manager: playlist.NewManager(store),
		session: session.New(),
	}

	log.Log.Info("client started", zap.String("catalog", catalogURL), zap.String("account", accountURL))
	sh.repl()
}
