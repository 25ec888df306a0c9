package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"gharkharch/internal/core"
	"gharkharch/internal/store"
)

type familyStore struct {
	st *Store
}

func (f *familyStore) Create(ctx context.Context, fam core.Family) (string, error) {
	if err := fam.Validate(); err != nil {
		return "", err
	}
	if fam.ID == "" {
		fam.ID = uuid.NewString()
	}

	tx, err := f.st.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO families (id, name, admin_uid, invite_code) VALUES (?, ?, ?, ?)`,
		fam.ID, fam.Name, fam.AdminUID, core.NormalizeInviteCode(fam.InviteCode))
	if err != nil {
		return "", fmt.Errorf("insert family: %w", err)
	}

	members := fam.Members
	if len(members) == 0 {
		members = map[string]bool{fam.AdminUID: true}
	}
	for uid, ok := range members {
		if !ok {
			continue
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO family_members (family_id, uid) VALUES (?, ?)`, fam.ID, uid)
		if err != nil {
			return "", fmt.Errorf("insert family member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit family: %w", err)
	}
	return fam.ID, nil
}

func (f *familyStore) Get(ctx context.Context, id string) (core.Family, error) {
	return f.scanFamily(ctx,
		`SELECT id, name, admin_uid, invite_code FROM families WHERE id = ?`, id)
}

func (f *familyStore) AddMember(ctx context.Context, familyID, uid string) error {
	if _, err := f.Get(ctx, familyID); err != nil {
		return err
	}
	_, err := f.st.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO family_members (family_id, uid) VALUES (?, ?)`, familyID, uid)
	if err != nil {
		return fmt.Errorf("insert family member: %w", err)
	}
	return nil
}

func (f *familyStore) RemoveMember(ctx context.Context, familyID, uid string) error {
	if _, err := f.Get(ctx, familyID); err != nil {
		return err
	}
	_, err := f.st.db.ExecContext(ctx,
		`DELETE FROM family_members WHERE family_id = ? AND uid = ?`, familyID, uid)
	if err != nil {
		return fmt.Errorf("delete family member: %w", err)
	}
	return nil
}

func (f *familyStore) FindByInviteCode(ctx context.Context, code string) (core.Family, error) {
	return f.scanFamily(ctx,
		`SELECT id, name, admin_uid, invite_code FROM families WHERE invite_code = ?`,
		core.NormalizeInviteCode(code))
}

func (f *familyStore) scanFamily(ctx context.Context, query string, arg any) (core.Family, error) {
	var fam core.Family
	err := f.st.db.QueryRowContext(ctx, query, arg).
		Scan(&fam.ID, &fam.Name, &fam.AdminUID, &fam.InviteCode)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Family{}, store.ErrNotFound
	}
	if err != nil {
		return core.Family{}, fmt.Errorf("query family: %w", err)
	}

	rows, err := f.st.db.QueryContext(ctx,
		`SELECT uid FROM family_members WHERE family_id = ?`, fam.ID)
	if err != nil {
		return core.Family{}, fmt.Errorf("query family members: %w", err)
	}
	defer rows.Close()

	fam.Members = make(map[string]bool)
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return core.Family{}, fmt.Errorf("scan family member: %w", err)
		}
		fam.Members[uid] = true
	}
	return fam, rows.Err()
}

type profileStore struct {
	st *Store
}

func (p *profileStore) Upsert(ctx context.Context, prof core.UserProfile) error {
	_, err := p.st.db.ExecContext(ctx,
		`INSERT INTO profiles (uid, email, display_name, photo_url, family_id, role)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(uid) DO UPDATE SET
		   email = excluded.email,
		   display_name = excluded.display_name,
		   photo_url = excluded.photo_url,
		   family_id = excluded.family_id,
		   role = excluded.role`,
		prof.UID, prof.Email, prof.DisplayName, prof.PhotoURL, prof.FamilyID, string(prof.Role))
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (p *profileStore) Get(ctx context.Context, uid string) (core.UserProfile, error) {
	var (
		prof core.UserProfile
		role string
	)
	err := p.st.db.QueryRowContext(ctx,
		`SELECT uid, email, display_name, photo_url, family_id, role FROM profiles WHERE uid = ?`, uid).
		Scan(&prof.UID, &prof.Email, &prof.DisplayName, &prof.PhotoURL, &prof.FamilyID, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return core.UserProfile{}, store.ErrNotFound
	}
	if err != nil {
		return core.UserProfile{}, fmt.Errorf("query profile: %w", err)
	}
	prof.Role = core.Role(role)
	return prof, nil
}

func (p *profileStore) SetFamily(ctx context.Context, uid, familyID string, role core.Role) error {
	res, err := p.st.db.ExecContext(ctx,
		`UPDATE profiles SET family_id = ?, role = ? WHERE uid = ?`, familyID, string(role), uid)
	if err != nil {
		return fmt.Errorf("update profile family: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}
