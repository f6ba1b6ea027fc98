package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"libradesk/library"

	"github.com/joho/godotenv"
	"golang.org/x/term"
)

// readPassword securely reads a password with masking
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println() // Add newline after password input
	return strings.TrimSpace(string(bytePassword)), nil
}

// login prompts for staff credentials, up to three attempts, and returns
// the authenticated role.
func login(sc *bufio.Scanner, mgr *library.LibraryManager) (string, error) {
	for attempt := 0; attempt < 3; attempt++ {
		fmt.Print("Username: ")
		if !sc.Scan() {
			return "", fmt.Errorf("input closed")
		}
		username := strings.TrimSpace(sc.Text())

		password, err := readPassword("Password: ")
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		role, err := mgr.Login(username, password)
		if err == nil {
			return role, nil
		}
		fmt.Printf("Login failed: %v\n", err)
	}
	return "", fmt.Errorf("too many failed login attempts")
}

func main() {
	// Optional .env next to the binary; absence is fine.
	_ = godotenv.Load()

	cfg, err := library.LoadConfig(os.Getenv("LIBRADESK_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger, flush := library.SetupLogging(cfg)
	defer flush()

	manager, err := library.NewLibraryManager(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer manager.Close()

	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Welcome to LibraDesk!")
	role, err := login(scanner, manager)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Logged in as %s\n\n", role)

	fmt.Println("Available commands:")
	fmt.Println("  Members: add member, update member, list members, search members")
	fmt.Println("  Books: add book, update book, list books, search books")
	fmt.Println("  Circulation: borrow, return")
	fmt.Println("  Reports: active loans, history, overdue")
	fmt.Println("  System: exit")

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		cmd := strings.TrimSpace(scanner.Text())

		switch cmd {
		case "add member":
			handleAddMember(scanner, manager)
		case "update member":
			handleUpdateMember(scanner, manager)
		case "list members":
			handleListMembers(manager, "")
		case "search members":
			handleSearchMembers(scanner, manager)
		case "add book":
			handleAddBook(scanner, manager, role)
		case "update book":
			handleUpdateBook(scanner, manager, role)
		case "list books":
			handleListBooks(manager, "")
		case "search books":
			handleSearchBooks(scanner, manager)
		case "borrow":
			handleBorrow(scanner, manager)
		case "return":
			handleReturn(scanner, manager)
		case "active loans":
			handleActiveLoans(manager)
		case "history":
			handleHistory(manager)
		case "overdue":
			handleOverdue(manager)
		case "exit":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Unknown command. Type one of the available commands listed above.")
		}
	}
}

func promptLine(sc *bufio.Scanner, label string) (string, bool) {
	fmt.Printf("%s: ", label)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func promptID(sc *bufio.Scanner, label string) (int64, bool) {
	s, ok := promptLine(sc, label)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fmt.Printf("Invalid %s: %s\n", strings.ToLower(label), s)
		return 0, false
	}
	return id, true
}

func handleAddMember(sc *bufio.Scanner, mgr *library.LibraryManager) {
	name, ok := promptLine(sc, "Name")
	if !ok {
		return
	}
	email, ok := promptLine(sc, "Email")
	if !ok {
		return
	}

	id, err := mgr.AddMember(name, email)
	if err != nil {
		fmt.Printf("Error adding member: %v\n", err)
		return
	}
	fmt.Printf("Added member '%s' with ID %d\n", name, id)
}

func handleUpdateMember(sc *bufio.Scanner, mgr *library.LibraryManager) {
	id, ok := promptID(sc, "Member ID")
	if !ok {
		return
	}
	name, ok := promptLine(sc, "Name")
	if !ok {
		return
	}
	email, ok := promptLine(sc, "Email")
	if !ok {
		return
	}

	if err := mgr.UpdateMember(id, name, email); err != nil {
		fmt.Printf("Error updating member: %v\n", err)
		return
	}
	fmt.Printf("Member %d updated\n", id)
}

func handleListMembers(mgr *library.LibraryManager, pattern string) {
	members, err := mgr.ListMembers(pattern)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(members) == 0 {
		fmt.Println("No members found.")
		return
	}

	fmt.Printf("%-5s %-30s %-30s\n", "ID", "Name", "Email")
	fmt.Println(strings.Repeat("-", 70))
	for _, m := range members {
		fmt.Printf("%-5d %-30s %-30s\n", m.ID, truncateString(m.Name, 30), truncateString(m.Email, 30))
	}
}

func handleSearchMembers(sc *bufio.Scanner, mgr *library.LibraryManager) {
	pattern, ok := promptLine(sc, "Pattern")
	if !ok {
		return
	}
	handleListMembers(mgr, pattern)
}

func handleAddBook(sc *bufio.Scanner, mgr *library.LibraryManager, role string) {
	title, ok := promptLine(sc, "Title")
	if !ok {
		return
	}
	author, ok := promptLine(sc, "Author")
	if !ok {
		return
	}
	genre, ok := promptLine(sc, "Genre")
	if !ok {
		return
	}
	isbn, ok := promptLine(sc, "ISBN")
	if !ok {
		return
	}
	availStr, ok := promptLine(sc, "Copies (default 1)")
	if !ok {
		return
	}
	available := 1
	if availStr != "" {
		n, err := strconv.Atoi(availStr)
		if err != nil {
			fmt.Printf("Invalid copy count: %s\n", availStr)
			return
		}
		available = n
	}

	id, err := mgr.AddBook(role, title, author, genre, isbn, available)
	if err != nil {
		fmt.Printf("Error adding book: %v\n", err)
		return
	}
	fmt.Printf("Added book ID %d\n", id)
}

func handleUpdateBook(sc *bufio.Scanner, mgr *library.LibraryManager, role string) {
	id, ok := promptID(sc, "Book ID")
	if !ok {
		return
	}
	title, ok := promptLine(sc, "Title")
	if !ok {
		return
	}
	author, ok := promptLine(sc, "Author")
	if !ok {
		return
	}
	genre, ok := promptLine(sc, "Genre")
	if !ok {
		return
	}
	isbn, ok := promptLine(sc, "ISBN")
	if !ok {
		return
	}
	availStr, ok := promptLine(sc, "Available")
	if !ok {
		return
	}
	available, err := strconv.Atoi(availStr)
	if err != nil {
		fmt.Printf("Invalid availability: %s\n", availStr)
		return
	}

	if err := mgr.UpdateBook(role, id, title, author, genre, isbn, available); err != nil {
		fmt.Printf("Error updating book: %v\n", err)
		return
	}
	fmt.Printf("Book %d updated\n", id)
}

func handleListBooks(mgr *library.LibraryManager, pattern string) {
	books, err := mgr.ListBooks(pattern)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(books) == 0 {
		fmt.Println("No books found.")
		return
	}

	fmt.Printf("%-5s %-30s %-25s %-15s %-17s %s\n", "ID", "Title", "Author", "Genre", "ISBN", "Available")
	fmt.Println(strings.Repeat("-", 105))
	for _, b := range books {
		fmt.Printf("%-5d %-30s %-25s %-15s %-17s %d\n",
			b.ID,
			truncateString(b.Title, 30),
			truncateString(b.Author, 25),
			truncateString(b.Genre, 15),
			b.ISBN,
			b.Available)
	}
}

func handleSearchBooks(sc *bufio.Scanner, mgr *library.LibraryManager) {
	pattern, ok := promptLine(sc, "Pattern")
	if !ok {
		return
	}
	handleListBooks(mgr, pattern)
}

func handleBorrow(sc *bufio.Scanner, mgr *library.LibraryManager) {
	memberID, ok := promptID(sc, "Member ID")
	if !ok {
		return
	}
	bookID, ok := promptID(sc, "Book ID")
	if !ok {
		return
	}
	daysStr, ok := promptLine(sc, "Days (default 7)")
	if !ok {
		return
	}
	days := 0
	if daysStr != "" {
		n, err := strconv.Atoi(daysStr)
		if err != nil {
			fmt.Printf("Invalid day count: %s\n", daysStr)
			return
		}
		days = n
	}

	txID, err := mgr.Borrow(memberID, bookID, days)
	if err != nil {
		fmt.Printf("Error borrowing book: %v\n", err)
		return
	}

	loan, err := mgr.LoanByTx(txID)
	if err != nil {
		fmt.Printf("Borrowed (TX %d)\n", txID)
		return
	}
	fmt.Printf("Book '%s' checked out to %s (TX %d, due %s)\n",
		loan.BookTitle, loan.MemberName, txID, loan.DueDate.Format("2006-01-02"))
}

func handleReturn(sc *bufio.Scanner, mgr *library.LibraryManager) {
	txID, ok := promptID(sc, "TX ID")
	if !ok {
		return
	}
	format, ok := promptLine(sc, "Invoice format [txt/csv]")
	if !ok {
		return
	}

	fine, path, err := mgr.ReturnWithInvoice(txID, strings.EqualFold(format, "csv"))
	if err != nil {
		fmt.Printf("Error returning book: %v\n", err)
		return
	}
	fmt.Printf("Returned. Fine: %d\nInvoice saved: %s\n", fine, path)
}

func handleActiveLoans(mgr *library.LibraryManager) {
	loans, err := mgr.ActiveLoans()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	printLoans(loans)
}

func handleHistory(mgr *library.LibraryManager) {
	loans, err := mgr.History()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	printLoans(loans)
}

func printLoans(loans []*library.LoanRecord) {
	if len(loans) == 0 {
		fmt.Println("No transactions.")
		return
	}

	fmt.Printf("%-6s %-25s %-30s %-12s %-12s %-12s %s\n", "TX", "Member", "Book", "Borrowed", "Due", "Returned", "Fine")
	fmt.Println(strings.Repeat("-", 110))
	for _, l := range loans {
		returned := "-"
		if l.ReturnDate.Valid {
			returned = l.ReturnDate.Time.Format("2006-01-02")
		}
		fmt.Printf("%-6d %-25s %-30s %-12s %-12s %-12s %d\n",
			l.ID,
			truncateString(l.MemberName, 25),
			truncateString(l.BookTitle, 30),
			l.BorrowDate.Format("2006-01-02"),
			l.DueDate.Format("2006-01-02"),
			returned,
			l.Fine)
	}
}

func handleOverdue(mgr *library.LibraryManager) {
	overdue, err := mgr.Overdue()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(overdue) == 0 {
		fmt.Println("Nothing overdue.")
		return
	}

	fmt.Printf("%-25s %-30s %s\n", "Member", "Book", "Days Overdue")
	fmt.Println(strings.Repeat("-", 70))
	for _, o := range overdue {
		fmt.Printf("%-25s %-30s %d\n",
			truncateString(o.MemberName, 25),
			truncateString(o.BookTitle, 30),
			o.DaysOverdue)
	}
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}
