package cron_config

type Config struct {
	// Heartbeat check, every minute
	CronScheduleHeartbeat string `env:"CRON_SCHEDULE_HEARTBEAT" envDefault:"0 * * * * *"`
	// Inbox polling pass, every 5 minutes
	CronScheduleProcessInbox string `env:"CRON_SCHEDULE_PROCESS_INBOX" envDefault:"0 */5 * * * *"`
}
