// Команда notecli - консольный клиент сервера заметок. Работает через
// клиентские хранилища состояния: кэш коллекций, обогащение заметок
// категориями и диалог с ассистентом с контекстом заметок. Настройки
// списка переживают перезапуск в локальной базе SQLite.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"smartnote/internal/client/gateway"
	"smartnote/internal/client/prefs"
	"smartnote/internal/client/store"
	"smartnote/internal/domain/entities"
	"smartnote/pkg/logger"
)

const usage = `commands:
  list                       show cached notes (current filter and sort)
  search <query>             search notes on the server
  add <title> | <content>    create a note, optional third part: | <category id>
  edit <id> | <title> | <content>   replace a note
  del <id>                   delete a note
  cats                       show categories
  addcat <name> [color]      create a category
  delcat <id>                delete a category
  filter <category id|none|all>     filter the list
  sort <updated|created|title> [asc|desc]   order the list
  chat <message>             talk to the assistant
  reset                      start a new chat
  refresh                    reload collections from the server
  quit                       exit`

// cachedContext отдает ассистенту кэшированные коллекции.
type cachedContext struct {
	notes      *store.NotesStore
	categories *store.CategoriesStore
}

func (c cachedContext) Notes() []*entities.Note          { return c.notes.Notes() }
func (c cachedContext) Categories() []*entities.Category { return c.categories.Categories() }

func main() {
	_ = godotenv.Load()

	var (
		addr      = flag.String("addr", "http://localhost:8080/api/v1", "API base URL")
		token     = flag.String("token", os.Getenv("SMARTNOTE_TOKEN"), "bearer token")
		prefsPath = flag.String("prefs", "notecli.db", "preferences database path")
	)
	flag.Parse()

	// Консольному клиенту хватает тихого логгера.
	log, err := logger.NewLogger(logger.Production, "error")
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	client := gateway.New(*addr, gateway.StaticToken(*token))
	notes := store.NewNotesStore(client)
	categories := store.NewCategoriesStore(client)
	chat := store.NewChatStore(client, cachedContext{notes: notes, categories: categories})

	preferences, err := prefs.Open(ctx, *prefsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open preferences:", err)
		os.Exit(1)
	}
	defer func() { _ = preferences.Close() }()

	listState, err := preferences.LoadListState(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
		listState = prefs.DefaultListState()
	}

	if err := notes.Fetch(ctx); err != nil {
		fmt.Println("!", store.FriendlyMessage(err))
	}
	if err := categories.Fetch(ctx); err != nil {
		fmt.Println("!", store.FriendlyMessage(err))
	}

	fmt.Println("smartnote cli, type 'help' for commands")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		command, args := splitCommand(scanner.Text())
		switch command {
		case "":
		case "help":
			fmt.Println(usage)
		case "list":
			printNotes(listNotes(notes, categories, listState, ""))
		case "search":
			results, err := notes.Search(ctx, args)
			if err != nil {
				fmt.Println("!", store.FriendlyMessage(err))
				continue
			}
			listState.LastQuery = args
			saveState(ctx, preferences, listState)
			printNotes(store.Enrich(results, categories.Categories()))
		case "add":
			runAdd(ctx, notes, args)
		case "edit":
			runEdit(ctx, notes, args)
		case "del":
			if err := notes.Delete(ctx, args); err != nil {
				fmt.Println("!", store.FriendlyMessage(err))
				continue
			}
			fmt.Println("deleted")
		case "cats":
			printCategories(categories.Categories())
		case "addcat":
			runAddCategory(ctx, categories, args)
		case "delcat":
			if err := categories.Delete(ctx, args); err != nil {
				fmt.Println("!", store.FriendlyMessage(err))
				continue
			}
			fmt.Println("deleted")
		case "filter":
			listState.Category = parseFilter(args)
			saveState(ctx, preferences, listState)
			printNotes(listNotes(notes, categories, listState, ""))
		case "sort":
			applySort(&listState, args)
			saveState(ctx, preferences, listState)
			printNotes(listNotes(notes, categories, listState, ""))
		case "chat":
			runChat(ctx, chat, args)
		case "reset":
			chat.Reset()
			fmt.Println("chat reset")
		case "refresh":
			if err := notes.Fetch(ctx); err != nil {
				fmt.Println("!", store.FriendlyMessage(err))
			}
			if err := categories.Fetch(ctx); err != nil {
				fmt.Println("!", store.FriendlyMessage(err))
			}
			fmt.Println("refreshed")
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command, type 'help'")
		}
	}
}

// splitCommand отделяет команду от аргументов.
func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	command, args, _ := strings.Cut(line, " ")
	return strings.ToLower(command), strings.TrimSpace(args)
}

// listNotes применяет фильтр и сортировку и обогащает результат категориями.
func listNotes(notes *store.NotesStore, categories *store.CategoriesStore, state prefs.ListState, query string) []store.NoteWithCategory {
	selected := notes.List(store.ListOptions{
		Category: state.Category,
		Query:    query,
		Sort:     state.Sort,
		Desc:     state.Desc,
	})
	return store.Enrich(selected, categories.Categories())
}

// printNotes выводит заметки с именами категорий.
func printNotes(enriched []store.NoteWithCategory) {
	if len(enriched) == 0 {
		fmt.Println("no notes")
		return
	}
	for _, item := range enriched {
		categoryName := "-"
		if item.Category != nil {
			categoryName = item.Category.Name
		}
		fmt.Printf("%s  [%s]  %s\n    %s\n", item.Note.ID, categoryName, item.Note.Title, item.Note.Content)
	}
}

// printCategories выводит категории.
func printCategories(categories []*entities.Category) {
	if len(categories) == 0 {
		fmt.Println("no categories")
		return
	}
	for _, category := range categories {
		fmt.Printf("%s  %s (%s)\n", category.ID, category.Name, category.Color)
	}
}

// runAdd создает заметку из "title | content | [category id]".
func runAdd(ctx context.Context, notes *store.NotesStore, args string) {
	parts := splitParts(args)
	if len(parts) < 2 {
		fmt.Println("usage: add <title> | <content> [| <category id>]")
		return
	}

	input := gateway.CreateNoteInput{Title: parts[0], Content: parts[1]}
	if len(parts) > 2 && parts[2] != "" {
		input.CategoryID = &parts[2]
	}

	note, err := notes.Create(ctx, input)
	if err != nil {
		fmt.Println("!", store.FriendlyMessage(err))
		return
	}
	fmt.Println("created", note.ID)
}

// runEdit заменяет заметку из "id | title | content".
func runEdit(ctx context.Context, notes *store.NotesStore, args string) {
	parts := splitParts(args)
	if len(parts) < 3 {
		fmt.Println("usage: edit <id> | <title> | <content>")
		return
	}

	note, err := notes.Update(ctx, gateway.UpdateNoteInput{
		ID:      parts[0],
		Title:   parts[1],
		Content: parts[2],
	})
	if err != nil {
		fmt.Println("!", store.FriendlyMessage(err))
		return
	}
	fmt.Println("updated", note.ID)
}

// runAddCategory создает категорию из "name [color]".
func runAddCategory(ctx context.Context, categories *store.CategoriesStore, args string) {
	name, color, _ := strings.Cut(args, " ")
	if name == "" {
		fmt.Println("usage: addcat <name> [color]")
		return
	}
	if color == "" {
		color = "#808080"
	}

	category, err := categories.Create(ctx, gateway.CreateCategoryInput{Name: name, Color: strings.TrimSpace(color)})
	if err != nil {
		fmt.Println("!", store.FriendlyMessage(err))
		return
	}
	fmt.Println("created", category.ID)
}

// runChat отправляет сообщение ассистенту и печатает поток ответа.
func runChat(ctx context.Context, chat *store.ChatStore, args string) {
	if args == "" {
		fmt.Println("usage: chat <message>")
		return
	}

	_, err := chat.Send(ctx, args, func(chunk string) {
		fmt.Print(chunk)
	})
	fmt.Println()
	if err != nil {
		fmt.Println("!", store.FriendlyMessage(err))
		return
	}

	snapshot := chat.Snapshot()
	if len(snapshot.Related) > 0 {
		fmt.Printf("(%d related notes in context)\n", len(snapshot.Related))
	}
}

// splitParts режет аргументы по '|' с обрезкой пробелов.
func splitParts(args string) []string {
	raw := strings.Split(args, "|")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		parts = append(parts, strings.TrimSpace(part))
	}
	return parts
}

// parseFilter превращает аргумент filter в значение для ListOptions.
func parseFilter(args string) *string {
	switch args {
	case "", "all":
		return nil
	case "none":
		empty := ""
		return &empty
	default:
		return &args
	}
}

// applySort разбирает "sort <key> [asc|desc]".
func applySort(state *prefs.ListState, args string) {
	key, direction, _ := strings.Cut(args, " ")
	switch store.SortKey(key) {
	case store.SortUpdated, store.SortCreated, store.SortTitle:
		state.Sort = store.SortKey(key)
	default:
		fmt.Println("usage: sort <updated|created|title> [asc|desc]")
		return
	}
	state.Desc = strings.TrimSpace(direction) != "asc"
}

// saveState сохраняет состояние списка, не прерывая работу при ошибке.
func saveState(ctx context.Context, preferences *prefs.Store, state prefs.ListState) {
	if err := preferences.SaveListState(ctx, state); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}
}
