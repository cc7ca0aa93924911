package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/shubham90-developer/Total-Health-sub004/internal/database"
	"github.com/shubham90-developer/Total-Health-sub004/internal/env"
)

func main() {
	_ = godotenv.Load()

	path := flag.String("path", env.GetEnv(env.EnvDatabasePath, env.DefaultDatabasePath), "path to the database file")
	flag.Parse()

	version, err := database.Migrate(*path)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Database migration complete for %s (schema version %d)", *path, version)
}

/*
This project is the backend API for the Total Health meal-plan platform. Memberships, meal punching and table bookings for the ordering site and the admin dashboard.
API Copyright (C) 2025 Total Health
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
