// Package harness runs YAML scenarios against a fresh in-memory AppStore.
//
// A scenario is a list of actions to dispatch followed by assertions on the
// final document. Each run starts from an empty document and uses
// sequential ids (id-1, id-2, ...) so results are reproducible.
//
// # Scenario Format
//
//	name: expense_lowers_balance
//	description: "An expense reduces the account balance"
//	steps:
//	  - action: AddAccount
//	    args:
//	      account: { name: Cash, icon: cash, initialBalance: 1000 }
//	    save: cash
//	  - action: AddTransaction
//	    args:
//	      transaction:
//	        description: Coffee
//	        amount: 5
//	        type: expense
//	        category: personal
//	        accountId: $cash
//	        date: "2026-10-15T09:00:00Z"
//	assertions:
//	  - type: balance
//	    account: $cash
//	    equals: "995"
//
// A step's save names the id returned by its Add action. Any later string
// of the form $name, in args or assertions, is replaced by that id.
//
// A step may set expect to "noop" (the dispatch must not change the
// document) or "refused" (the dispatch must be rejected as invalid).
// Without expect, a step must succeed and change the document.
//
// # Assertion Types
//
//   - count: collection holds exactly equals items
//   - balance: account balance equals a decimal string; without account,
//     the total across all accounts
//   - progress: project has done of total tasks done
//   - exists: collection does (or, with present: false, does not) hold id
//   - field: a JSON field of one entity equals a value (null for cleared)
//   - integrity: the document has no integrity violations
//
// Collections use their JSON names: accounts, transactions, projects,
// contacts, categories, moodLogs, journalEntries. The tasks collection
// additionally needs project.
package harness
