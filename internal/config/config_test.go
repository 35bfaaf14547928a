package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lc/umbra/internal/filesys"
	"github.com/lc/umbra/internal/registry"
)

type ConfigTestSuite struct {
	suite.Suite

	dir      string
	provider *FSProvider

	structuredPath string
	legacyPath     string
}

func (s *ConfigTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.structuredPath = filepath.Join(s.dir, "umbra.toml")
	s.legacyPath = filepath.Join(s.dir, "pihole-FTL.conf")
	s.provider = NewWithFS(filesys.OS(),
		[]string{s.structuredPath},
		[]string{s.legacyPath})
}

func (s *ConfigTestSuite) writeStructured(doc string) {
	s.Require().NoError(os.WriteFile(s.structuredPath, []byte(doc), 0o644))
}

func (s *ConfigTestSuite) writeLegacy(conf string) {
	s.Require().NoError(os.WriteFile(s.legacyPath, []byte(conf), 0o644))
}

func (s *ConfigTestSuite) item(reg *registry.Registry, name string) *registry.Item {
	it, ok := reg.ByName(name)
	s.Require().True(ok, name)
	return it
}

func (s *ConfigTestSuite) TestLoadWithoutFiles() {
	reg, err := s.provider.Load()
	s.NoError(err)
	for _, it := range reg.Items() {
		s.True(it.IsDefault(), it.Name())
	}
}

func (s *ConfigTestSuite) TestLoadStructured() {
	s.writeStructured(`
[dns]
blockingmode = "NXDOMAIN"

[misc]
privacylevel = 1
`)
	reg, err := s.provider.Load()
	s.NoError(err)
	s.Equal(registry.BlockingNX, s.item(reg, "dns.blockingmode").Value.Blocking)
	s.Equal(registry.PrivacyHideDomains, s.item(reg, "misc.privacylevel").Value.Privacy)
}

func (s *ConfigTestSuite) TestBrokenStructuredNeverPartiallyApplies() {
	// valid assignment followed by a syntax error; nothing may stick
	s.writeStructured("[dns]\nblockingmode = \"NXDOMAIN\"\n[broken\n")
	reg, err := s.provider.Load()
	s.NoError(err)
	s.True(s.item(reg, "dns.blockingmode").IsDefault())
}

func (s *ConfigTestSuite) TestLegacySeedsOnlyUnsetValues() {
	s.writeStructured("[dns]\nblockingmode = \"NULL\"\n")
	s.writeLegacy("BLOCKINGMODE=NXDOMAIN\nIGNORE_LOCALHOST=yes\n")

	reg, err := s.provider.Load()
	s.NoError(err)
	// structured wins where both formats set a value
	s.Equal(registry.BlockingNull, s.item(reg, "dns.blockingmode").Value.Blocking)
	// the legacy file seeds what the structured document left alone
	s.True(s.item(reg, "dns.ignoreLocalhost").Value.B)
	s.Equal(registry.OriginLegacy, s.item(reg, "dns.ignoreLocalhost").Origin())
}

func (s *ConfigTestSuite) TestPrivacyRatchetAcrossFormats() {
	s.writeStructured("[misc]\nprivacylevel = 1\n")
	s.writeLegacy("PRIVACYLEVEL=3\n")

	reg, err := s.provider.Load()
	s.NoError(err)
	s.Equal(registry.PrivacyMaximum, s.item(reg, "misc.privacylevel").Value.Privacy)
}

func (s *ConfigTestSuite) TestSearchOrder() {
	system := filepath.Join(s.dir, "etc", "umbra.toml")
	s.Require().NoError(os.MkdirAll(filepath.Dir(system), 0o755))
	s.Require().NoError(os.WriteFile(system, []byte("[misc]\nnice = 5\n"), 0o644))

	p := NewWithFS(filesys.OS(), []string{s.structuredPath, system}, nil)

	// only the system file exists
	reg, err := p.Load()
	s.NoError(err)
	s.Equal(int64(5), s.item(reg, "misc.nice").Value.I)

	// the local file takes precedence once present
	s.writeStructured("[misc]\nnice = -5\n")
	reg, err = p.Load()
	s.NoError(err)
	s.Equal(int64(-5), s.item(reg, "misc.nice").Value.I)
}

func (s *ConfigTestSuite) TestWriteLoadRoundTrip() {
	reg := registry.New()
	s.item(reg, "dns.blockingmode").Set(registry.Blocking(registry.BlockingNodata), registry.OriginStructured)
	s.item(reg, "http.port").Set(registry.String("5353"), registry.OriginStructured)
	s.item(reg, "debug.queries").Set(registry.Bool(true), registry.OriginStructured)

	s.Require().NoError(Write(filesys.OS(), s.structuredPath, reg))

	loaded, err := s.provider.Load()
	s.NoError(err)
	for i, it := range reg.Items() {
		s.True(it.Value.Equal(loaded.Get(i).Value), it.Name())
	}
}

func (s *ConfigTestSuite) TestMigrate() {
	s.writeLegacy("BLOCKINGMODE=nxdomain\nMAXDBDAYS=30\nDEBUG_QUERIES=true\n")
	target := filepath.Join(s.dir, "migrated.toml")

	reg, source, err := s.provider.Migrate(target)
	s.Require().NoError(err)
	s.Equal(s.legacyPath, source)
	s.Equal(registry.BlockingNX, s.item(reg, "dns.blockingmode").Value.Blocking)

	// the written document loads back to the same configuration
	p := NewWithFS(filesys.OS(), []string{target}, nil)
	loaded, err := p.Load()
	s.NoError(err)
	s.Equal(registry.BlockingNX, s.item(loaded, "dns.blockingmode").Value.Blocking)
	s.Equal(int64(30), s.item(loaded, "database.maxDBdays").Value.I)
	s.True(s.item(loaded, "debug.queries").Value.B)
}

func (s *ConfigTestSuite) TestMigrateWithoutLegacyFile() {
	_, _, err := s.provider.Migrate(filepath.Join(s.dir, "migrated.toml"))
	s.ErrorIs(err, ErrNoConfig)
}

func (s *ConfigTestSuite) TestTargetedReads() {
	s.writeStructured("[misc]\nprivacylevel = 1\n\n[dns]\nblockingmode = \"NODATA\"\n")
	s.writeLegacy("PRIVACYLEVEL=2\nLOGFILE=/tmp/umbra.log\n")

	s.Equal(registry.PrivacyHideDomainsClients, s.provider.PrivacyLevel())
	s.Equal(registry.BlockingNodata, s.provider.BlockingMode())

	path, ok := s.provider.LegacyLogFilePath()
	s.True(ok)
	s.Equal("/tmp/umbra.log", path)
}

func (s *ConfigTestSuite) TestTargetedReadsWithoutFiles() {
	s.Equal(registry.PrivacyShowAll, s.provider.PrivacyLevel())
	s.Equal(registry.BlockingIP, s.provider.BlockingMode())
	_, ok := s.provider.LegacyLogFilePath()
	s.False(ok)
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
