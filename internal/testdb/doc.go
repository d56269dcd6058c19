// Package testdb provides helpers for tests that need a real PostgreSQL
// database.
//
// Tests obtain a connection with GetTestDBWithT, which skips the test when
// DATABASE_URL is not set and applies the embedded migrations once per
// process. Each test then runs inside WithTx, whose transaction is rolled
// back when the test function returns, so tests can share one database and
// run in parallel:
//
//	func TestFlashcardStore_Create(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        user := testdb.CreateTestUser(t, tx)
//	        // ...
//	    })
//	}
//
// Tests that must observe committed data, such as transaction rollback
// tests, use CreateCommittedUser and rely on ON DELETE CASCADE for cleanup.
package testdb
