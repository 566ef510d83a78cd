package setup

import (
	"bytes"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"job-board/internal/credential"
	"job-board/internal/domain"
)

func TestInitDB_UnsupportedDriver(t *testing.T) {
	_, err := InitDB(DBConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestDialectorFor_BuildsDSN(t *testing.T) {
	d, err := dialectorFor(DBConfig{Driver: DriverMySQL, User: "u", Password: "p", Name: "jobs"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = dialectorFor(DBConfig{Driver: DriverPostgres, User: "u"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())
}

func TestMigrateAndSeed(t *testing.T) {
	db, err := InitDB(DBConfig{Driver: DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, MigrateDB(db))
	assert.True(t, db.Migrator().HasIndex(&domain.Application{}, "idx_applications_job_applicant"))

	hasher := credential.NewBcryptHasher(bcrypt.MinCost)
	created, err := Seed(db, hasher)
	require.NoError(t, err)
	assert.True(t, created)

	var users []domain.User
	require.NoError(t, db.Order("id").Find(&users).Error)
	require.Len(t, users, 3)
	assert.Equal(t, domain.RoleAdmin, users[0].Role)
	assert.True(t, hasher.Verify("admin123", users[0].PasswordHash))
	assert.Equal(t, "Tech Corp Solutions", *users[1].CompanyName)
	assert.Nil(t, users[2].CompanyName)

	var job domain.Job
	require.NoError(t, db.First(&job).Error)
	assert.Equal(t, "Software Developer", job.Title)
	assert.Equal(t, users[1].ID, job.EmployerID)
	assert.True(t, job.IsActive)

	// 再次执行不会重复写入
	created, err = Seed(db, hasher)
	require.NoError(t, err)
	assert.False(t, created)
	var count int64
	db.Model(&domain.User{}).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestInitDB_RecordNotFoundIsNotLogged(t *testing.T) {
	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })

	db, err := InitDB(DBConfig{Driver: DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, MigrateDB(db))

	err = db.Where("username = ?", "nobody").First(&domain.User{}).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NotContains(t, buf.String(), "record not found")
}
