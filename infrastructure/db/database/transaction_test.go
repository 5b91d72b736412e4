package database_test

import (
	"bytes"
	"testing"

	"github.com/wmchain/wmchaind/infrastructure/db/database"
)

func TestTransactionCommit(t *testing.T) {
	testForAllDatabaseTypes(t, "TestTransactionCommit", testTransactionCommit)
}

func testTransactionCommit(t *testing.T, db database.Database, testName string) {
	// Begin a new transaction
	dbTx, err := db.Begin()
	if err != nil {
		t.Fatalf("%s: Begin unexpectedly "+
			"failed: %s", testName, err)
	}
	defer func() {
		err := dbTx.RollbackUnlessClosed()
		if err != nil {
			t.Fatalf("%s: RollbackUnlessClosed "+
				"unexpectedly failed: %s", testName, err)
		}
	}()

	// Put a value into the transaction
	key := database.MakeBucket(nil).Key([]byte("key"))
	value := []byte("value")
	err = dbTx.Put(key, value)
	if err != nil {
		t.Fatalf("%s: Put unexpectedly "+
			"failed: %s", testName, err)
	}

	// Commit the transaction
	err = dbTx.Commit()
	if err != nil {
		t.Fatalf("%s: Commit unexpectedly "+
			"failed: %s", testName, err)
	}

	// Make sure that the value is now available in the database
	returnedValue, err := db.Get(key)
	if err != nil {
		t.Fatalf("%s: Get unexpectedly "+
			"failed: %s", testName, err)
	}
	if !bytes.Equal(returnedValue, value) {
		t.Fatalf("%s: Get returned wrong value. "+
			"Want: %s, got: %s", testName, string(value), string(returnedValue))
	}
}

func TestTransactionRollback(t *testing.T) {
	testForAllDatabaseTypes(t, "TestTransactionRollback", testTransactionRollback)
}

func testTransactionRollback(t *testing.T, db database.Database, testName string) {
	// Begin a new transaction
	dbTx, err := db.Begin()
	if err != nil {
		t.Fatalf("%s: Begin unexpectedly "+
			"failed: %s", testName, err)
	}

	// Put a value into the transaction
	key := database.MakeBucket(nil).Key([]byte("key"))
	value := []byte("value")
	err = dbTx.Put(key, value)
	if err != nil {
		t.Fatalf("%s: Put unexpectedly "+
			"failed: %s", testName, err)
	}

	// Roll the transaction back
	err = dbTx.Rollback()
	if err != nil {
		t.Fatalf("%s: Rollback unexpectedly "+
			"failed: %s", testName, err)
	}

	// Make sure that the value is not in the database
	exists, err := db.Has(key)
	if err != nil {
		t.Fatalf("%s: Has unexpectedly "+
			"failed: %s", testName, err)
	}
	if exists {
		t.Fatalf("%s: Has unexpectedly "+
			"returned that the value exists", testName)
	}
}

func TestTransactionCloseErrors(t *testing.T) {
	testForAllDatabaseTypes(t, "TestTransactionCloseErrors", testTransactionCloseErrors)
}

func testTransactionCloseErrors(t *testing.T, db database.Database, testName string) {
	tests := []struct {
		name     string
		function func(dbTx database.Transaction) error

		// shouldReturnError indicates whether we expect an
		// error when calling the function on a closed
		// transaction
		shouldReturnError bool
	}{
		{
			name: "Put",
			function: func(dbTx database.Transaction) error {
				return dbTx.Put(database.MakeBucket(nil).Key([]byte("key")), []byte("value"))
			},
			shouldReturnError: true,
		},
		{
			name: "Get",
			function: func(dbTx database.Transaction) error {
				_, err := dbTx.Get(database.MakeBucket(nil).Key([]byte("key")))
				return err
			},
			shouldReturnError: true,
		},
		{
			name: "Has",
			function: func(dbTx database.Transaction) error {
				_, err := dbTx.Has(database.MakeBucket(nil).Key([]byte("key")))
				return err
			},
			shouldReturnError: true,
		},
		{
			name: "Delete",
			function: func(dbTx database.Transaction) error {
				return dbTx.Delete(database.MakeBucket(nil).Key([]byte("key")))
			},
			shouldReturnError: true,
		},
		{
			name:              "Rollback",
			function:          database.Transaction.Rollback,
			shouldReturnError: true,
		},
		{
			name:              "Commit",
			function:          database.Transaction.Commit,
			shouldReturnError: true,
		},
		{
			name:              "RollbackUnlessClosed",
			function:          database.Transaction.RollbackUnlessClosed,
			shouldReturnError: false,
		},
	}

	for _, test := range tests {
		// Begin a new transaction and immediately commit it,
		// so that it's closed
		dbTx, err := db.Begin()
		if err != nil {
			t.Fatalf("%s: Begin unexpectedly "+
				"failed: %s", testName, err)
		}
		err = dbTx.Commit()
		if err != nil {
			t.Fatalf("%s: Commit unexpectedly "+
				"failed: %s", testName, err)
		}

		// Make sure that the test function returns an error
		// if and only if one is expected
		err = test.function(dbTx)
		if test.shouldReturnError && err == nil {
			t.Fatalf("%s: %s unexpectedly "+
				"succeeded", testName, test.name)
		}
		if !test.shouldReturnError && err != nil {
			t.Fatalf("%s: %s unexpectedly "+
				"failed: %s", testName, test.name, err)
		}
	}
}
