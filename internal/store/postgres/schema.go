//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package postgres

// Schema SQL for the textile dataset. Row ids are assigned by the
// generator, so reference and catalog tables use plain integer keys.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS categories (
    category_id   INTEGER PRIMARY KEY,
    category_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS brands (
    brand_id   INTEGER PRIMARY KEY,
    brand_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS materials (
    material_id   INTEGER PRIMARY KEY,
    material_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS suppliers (
    supplier_id   INTEGER PRIMARY KEY,
    supplier_name TEXT NOT NULL,
    brand_name    TEXT,
    contact_info  TEXT
);

CREATE TABLE IF NOT EXISTS collections (
    collection_id   INTEGER PRIMARY KEY,
    collection_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS styles (
    style_id   INTEGER PRIMARY KEY,
    style_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS colors (
    color_id   INTEGER PRIMARY KEY,
    color_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sizes (
    size_id   INTEGER PRIMARY KEY,
    size_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
    product_id         INTEGER PRIMARY KEY,
    product_name       TEXT NOT NULL,
    category_id        INTEGER REFERENCES categories(category_id),
    brand_id           INTEGER REFERENCES brands(brand_id),
    material_id        INTEGER REFERENCES materials(material_id),
    supplier_id        INTEGER REFERENCES suppliers(supplier_id),
    collection_id      INTEGER REFERENCES collections(collection_id),
    brought_unit_price NUMERIC(10,2),
    current_price      NUMERIC(10,2),
    offer              NUMERIC(5,2),
    price_after_offer  NUMERIC(10,2)
);

CREATE TABLE IF NOT EXISTS product_variants (
    variant_id     INTEGER PRIMARY KEY,
    product_id     INTEGER REFERENCES products(product_id),
    color_id       INTEGER REFERENCES colors(color_id),
    size_id        INTEGER REFERENCES sizes(size_id),
    stock_quantity INTEGER
);

CREATE TABLE IF NOT EXISTS product_styles (
    product_id INTEGER REFERENCES products(product_id),
    style_id   INTEGER REFERENCES styles(style_id),
    PRIMARY KEY (product_id, style_id)
);

CREATE TABLE IF NOT EXISTS holidays (
    holiday_date DATE PRIMARY KEY,
    holiday_name TEXT
);

CREATE TABLE IF NOT EXISTS sales (
    sale_id        BIGSERIAL PRIMARY KEY,
    transaction_id TEXT NOT NULL,
    sale_date      DATE NOT NULL,
    product_id     INTEGER REFERENCES products(product_id),
    variant_id     INTEGER REFERENCES product_variants(variant_id),
    quantity       INTEGER NOT NULL,
    unit_price     NUMERIC(10,2),
    total_price    NUMERIC(10,2),
    is_weekend     BOOLEAN NOT NULL,
    is_holiday     BOOLEAN NOT NULL,
    holiday_name   TEXT
);

CREATE INDEX IF NOT EXISTS idx_sales_sale_date ON sales(sale_date);
CREATE INDEX IF NOT EXISTS idx_sales_product ON sales(product_id);
CREATE INDEX IF NOT EXISTS idx_variants_product ON product_variants(product_id);
`

const dropSchemaSQL = `
DROP TABLE IF EXISTS sales CASCADE;
DROP TABLE IF EXISTS holidays CASCADE;
DROP TABLE IF EXISTS product_styles CASCADE;
DROP TABLE IF EXISTS product_variants CASCADE;
DROP TABLE IF EXISTS products CASCADE;
DROP TABLE IF EXISTS sizes CASCADE;
DROP TABLE IF EXISTS colors CASCADE;
DROP TABLE IF EXISTS styles CASCADE;
DROP TABLE IF EXISTS collections CASCADE;
DROP TABLE IF EXISTS suppliers CASCADE;
DROP TABLE IF EXISTS materials CASCADE;
DROP TABLE IF EXISTS brands CASCADE;
DROP TABLE IF EXISTS categories CASCADE;
`
