package registry

import (
	"net/netip"
	"strings"
)

func item(name, legacyKey string, def Value, help string) *Item {
	return &Item{
		Path:      strings.Split(name, "."),
		LegacyKey: legacyKey,
		Kind:      def.Kind,
		Value:     def,
		Default:   def,
		Help:      help,
	}
}

// defaultItems declares the full schema. Ordering matters twice: it is the
// stable index order, and the serializer relies on each table's direct leaf
// keys being declared before any of its subtables.
func defaultItems() []*Item {
	v4zero := netip.IPv4Unspecified()
	v6zero := netip.IPv6Unspecified()

	items := []*Item{
		// [dns]
		item("dns.analyzeAAAA", "AAAA_QUERY_ANALYSIS", Bool(true),
			"analyze AAAA queries the same way as A queries"),
		item("dns.ignoreLocalhost", "IGNORE_LOCALHOST", Bool(false),
			"hide queries made by localhost"),
		item("dns.analyzeOnlyAandAAAA", "ANALYZE_ONLY_A_AND_AAAA", Bool(false),
			"restrict analysis to A and AAAA queries"),
		item("dns.CNAMEdeepInspect", "CNAME_DEEP_INSPECT", Bool(true),
			"inspect CNAME chains for blocked targets"),
		item("dns.blockESNI", "BLOCK_ESNI", Bool(true),
			"block _esni. subdomains of blocked domains"),
		item("dns.EDNS0ECS", "EDNS0_ECS", Bool(true),
			"overwrite the query source with EDNS0 client subnet data when provided"),
		item("dns.showDNSSEC", "SHOW_DNSSEC", Bool(true),
			"analyze automatically generated DNSSEC queries"),
		item("dns.blockingmode", "BLOCKINGMODE", Blocking(BlockingIP),
			BlockingModeTokens()),
		item("dns.replyWhenBusy", "REPLY_WHEN_BUSY", Busy(BusyBlock),
			BusyReplyTokens()),
		item("dns.hostPTR", "PIHOLE_PTR", PTR(PTRHostname),
			PTRModeTokens()),
		item("dns.blockTTL", "BLOCK_TTL", UInt(2),
			"TTL in seconds for replies to blocked queries"),

		// [dns.specialDomains]
		item("dns.specialDomains.mozillaCanary", "MOZILLA_CANARY", Bool(true),
			"answer NXDOMAIN for use-application-dns.net"),
		item("dns.specialDomains.iCloudPrivateRelay", "BLOCK_ICLOUD_PR", Bool(true),
			"answer NXDOMAIN for the iCloud private relay domains"),

		// [dns.rateLimit] -- the legacy file carries both values in one
		// RATE_LIMIT=count/interval key, attached to the count item.
		item("dns.rateLimit.count", "RATE_LIMIT", UInt(1000),
			"maximum number of queries per client and interval, 0 disables"),
		item("dns.rateLimit.interval", "", UInt(60),
			"rate limiting interval in seconds"),

		// [dns.cache]
		item("dns.cache.size", "", UInt(10000),
			"number of cached DNS records"),
		item("dns.cache.optimizer", "", Long(3600),
			"seconds a stale record may be served while revalidating, -1 disables"),

		// [dns.reply.host]
		item("dns.reply.host.force4", "", Bool(false),
			"use a fixed IPv4 address for host name replies"),
		item("dns.reply.host.IPv4", "LOCAL_IPV4", IPv4(v4zero),
			"fixed IPv4 address for host name replies"),
		item("dns.reply.host.force6", "", Bool(false),
			"use a fixed IPv6 address for host name replies"),
		item("dns.reply.host.IPv6", "LOCAL_IPV6", IPv6(v6zero),
			"fixed IPv6 address for host name replies"),

		// [dns.reply.blocking]
		item("dns.reply.blocking.force4", "", Bool(false),
			"use a fixed IPv4 address for IP blocking mode replies"),
		item("dns.reply.blocking.IPv4", "BLOCK_IPV4", IPv4(v4zero),
			"fixed IPv4 address for IP blocking mode replies"),
		item("dns.reply.blocking.force6", "", Bool(false),
			"use a fixed IPv6 address for IP blocking mode replies"),
		item("dns.reply.blocking.IPv6", "BLOCK_IPV6", IPv6(v6zero),
			"fixed IPv6 address for IP blocking mode replies"),

		// [database]
		item("database.maxDBdays", "MAXDBDAYS", Int(365),
			"days of query history to keep, -1 keeps everything, 0 disables the database"),
		item("database.DBinterval", "DBINTERVAL", UInt(60),
			"seconds between database writes"),
		item("database.DBimport", "DBIMPORT", Bool(true),
			"import old queries from the database on startup"),
		item("database.maxHistory", "MAXLOGAGE", UInt(86400),
			"seconds of history to import from the database"),

		// [database.network]
		item("database.network.parseARPcache", "PARSE_ARP_CACHE", Bool(true),
			"analyze the ARP cache for the network overview"),
		item("database.network.expire", "MAXNETAGE", UInt(365),
			"days after which stale network table entries are removed"),

		// [resolver]
		item("resolver.resolveIPv4", "RESOLVE_IPV4", Bool(true),
			"resolve IPv4 client addresses to host names"),
		item("resolver.resolveIPv6", "RESOLVE_IPV6", Bool(true),
			"resolve IPv6 client addresses to host names"),
		item("resolver.networkNames", "NAMES_FROM_NETDB", Bool(true),
			"fall back to the network table when resolving client names"),
		item("resolver.refreshNames", "REFRESH_HOSTNAMES", Refresh(RefreshIPv4),
			RefreshModeTokens()),

		// [http]
		item("http.localAPIauth", "API_AUTH_FOR_LOCALHOST", Bool(true),
			"require authentication for API requests from localhost"),
		item("http.sessionTimeout", "API_SESSION_TIMEOUT", UInt(300),
			"seconds an API session stays valid after login"),
		item("http.prettyJSON", "API_PRETTY_JSON", Bool(false),
			"indent API JSON responses"),
		item("http.port", "WEBPORT", String("8080"),
			"port the API listens on"),
		item("http.domain", "WEBDOMAIN", String("umbra.local"),
			"domain the web interface is served under"),
		item("http.acl", "WEBACL", String(""),
			"comma separated access control list of +allow/-deny subnets, empty allows all"),

		// [http.paths]
		item("http.paths.webroot", "WEBROOT", String("/var/www/html"),
			"directory the web interface is served from"),
		item("http.paths.webhome", "WEBHOME", String("/admin/"),
			"sub-directory the web interface is served from, needs both slashes"),

		// [files]
		item("files.log", "LOGFILE", String("/var/log/umbra/umbra.log"),
			"daemon log file, empty logs to syslog"),
		item("files.pid", "PIDFILE", String("/run/umbra.pid"),
			"file the daemon writes its PID to"),
		item("files.database", "DBFILE", String("/etc/umbra/umbra.db"),
			"query history database, empty disables the database"),
		item("files.gravity", "GRAVITYDB", String("/etc/umbra/gravity.db"),
			"block list database"),
		item("files.macvendor", "MACVENDORDB", String("/etc/umbra/macvendor.db"),
			"MAC address to vendor mapping database"),
		item("files.setupVars", "SETUPVARSFILE", String("/etc/pihole/setupVars.conf"),
			"legacy installer settings file"),

		// [misc]
		item("misc.privacylevel", "PRIVACYLEVEL", Privacy(PrivacyShowAll),
			PrivacyLevelTokens()),
		item("misc.delayStartup", "DELAY_STARTUP", UInt(0),
			"seconds to wait before starting, at most 300"),
		item("misc.nice", "NICE", Int(-10),
			"process nice value, -999 disables the adjustment"),
		item("misc.addr2line", "ADDR2LINE", Bool(true),
			"resolve source locations when generating backtraces"),

		// [misc.check]
		item("misc.check.load", "CHECK_LOAD", Bool(true),
			"warn when the 15 minute load exceeds the core count"),
		item("misc.check.shmem", "CHECK_SHMEM", UInt(90),
			"shared memory usage percentage above which to warn, 0 to 100"),
		item("misc.check.disk", "CHECK_DISK", UInt(90),
			"disk usage percentage above which to warn, 0 to 100"),
	}

	// [debug] -- one Bool per category so the flags ride along in both
	// persistence formats.
	for _, c := range debugCategories {
		items = append(items, item("debug."+c.Leaf, LegacyDebugKey(c.Leaf), Bool(false),
			"verbose "+c.Leaf+" diagnostics"))
	}

	return items
}
