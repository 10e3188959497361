package model

// FindAccount returns the account with id and whether it exists.
func (d AppData) FindAccount(id string) (Account, bool) {
	for _, a := range d.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return Account{}, false
}

// FindProject returns the project with id and whether it exists.
func (d AppData) FindProject(id string) (Project, bool) {
	for _, p := range d.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// FindContact returns the contact with id and whether it exists.
func (d AppData) FindContact(id string) (Contact, bool) {
	for _, c := range d.Contacts {
		if c.ID == id {
			return c, true
		}
	}
	return Contact{}, false
}

// FindCategory returns the category with id and whether it exists.
func (d AppData) FindCategory(id string) (Category, bool) {
	for _, c := range d.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// FindJournalEntry returns the journal entry with id and whether it exists.
func (d AppData) FindJournalEntry(id string) (JournalEntry, bool) {
	for _, e := range d.JournalEntries {
		if e.ID == id {
			return e, true
		}
	}
	return JournalEntry{}, false
}

// FindTask returns the task with id inside p and whether it exists.
func (p Project) FindTask(id string) (Task, bool) {
	for _, t := range p.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
