package library

// SeedIfEmpty inserts demo members and books when the catalog has none,
// so a fresh install has something to circulate.
func SeedIfEmpty(d *Database) error {
	members, err := d.ListMembers("")
	if err != nil {
		return err
	}
	if len(members) == 0 {
		seedMembers := []struct{ name, email string }{
			{"Alice Sharma", "alice@example.com"},
			{"Bob Khan", "bob@example.com"},
		}
		for _, m := range seedMembers {
			if _, err := d.AddMember(m.name, m.email); err != nil {
				return err
			}
		}
	}

	books, err := d.ListBooks("")
	if err != nil {
		return err
	}
	if len(books) == 0 {
		seedBooks := []struct {
			title, author, genre, isbn string
			available                  int
		}{
			{"Python Crash Course", "Eric Matthes", "Programming", "9781593276034", 3},
			{"Clean Code", "Robert C. Martin", "Software", "9780132350884", 2},
			{"Atomic Habits", "James Clear", "Self-help", "9780735211292", 5},
		}
		for _, b := range seedBooks {
			if _, err := d.AddBook(b.title, b.author, b.genre, b.isbn, b.available); err != nil {
				return err
			}
		}
	}
	return nil
}
