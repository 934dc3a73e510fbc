package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "name").
		From("players").
		Where(Eq("nationality", "Brazil"), IsNull("deleted_at")).
		OrderBy("jersey_number").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id, name FROM players WHERE nationality = $1 AND deleted_at IS NULL ORDER BY jersey_number LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "Brazil" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderForUpdate(t *testing.T) {
	query, args, err := Select("image_path").
		From("news_items").
		Where(Eq("public_id", "n1"), IsNull("deleted_at")).
		ForUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build select for update query: %v", err)
	}

	wantQuery := "SELECT image_path FROM news_items WHERE public_id = $1 AND deleted_at IS NULL FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "n1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("accounts").
		Columns("public_id", "email").
		Values("a1", "a@x.com").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO accounts (public_id, email) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "a1" || args[1] != "a@x.com" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		Path    string `db:"path"`
		Ignored string `db:"-"`
		Size    int    `db:"size,omitempty"`
	}

	query, args, err := InsertModel("media_deletions", row{Path: "players/a.png", Size: 3}, "ON CONFLICT (path) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO media_deletions (path, size) VALUES ($1, $2) ON CONFLICT (path) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "players/a.png" || args[1] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("accounts").
		Set("role", "admin").
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "a1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE accounts SET role = $1, updated_at = NOW() WHERE public_id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "admin" || args[1] != "a1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("media_deletions").
		Where(In("path", []any{"a.png", "b.jpg"})).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM media_deletions WHERE path IN ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "a.png" || args[1] != "b.jpg" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("media_deletions").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}
}

func TestExprBindsArgumentsInOrder(t *testing.T) {
	query, args, err := Select("path").
		From("media_deletions").
		Where(Eq("kind", "players"), Expr("requested_at <= ? AND attempts < ?", "t0", 3)).
		ToSQL()
	if err != nil {
		t.Fatalf("build expr query: %v", err)
	}

	wantQuery := "SELECT path FROM media_deletions WHERE kind = $1 AND requested_at <= $2 AND attempts < $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInEmptyMatchesNothing(t *testing.T) {
	query, args, err := Select("path").From("media_deletions").Where(In("path", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build in query: %v", err)
	}
	if query != "SELECT path FROM media_deletions WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %v", query, args)
	}
}
