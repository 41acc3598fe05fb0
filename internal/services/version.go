package services

// AppVersion is stamped into backup metadata.
const AppVersion = "1.4.2"
